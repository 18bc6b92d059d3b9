package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"luaufmt/internal/driver"
)

func TestApplyEventTracksStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("formatting", []string{"a.luau", "b.luau"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.luau", Stage: driver.StageParse, Status: driver.StatusWorking})
	if got := m.items[0].status; got != "parsing" {
		t.Fatalf("expected parsing, got %q", got)
	}
	m.applyEvent(driver.Event{File: "a.luau", Stage: driver.StageFormat, Status: driver.StatusDone})
	m.applyEvent(driver.Event{File: "b.luau", Stage: driver.StageParse, Status: driver.StatusError, Err: errors.New("boom")})
	m.applyEvent(driver.Event{File: "unknown.luau", Stage: driver.StageRead, Status: driver.StatusWorking})

	if m.finished() != 2 {
		t.Fatalf("expected 2 finished files, got %d", m.finished())
	}
	if m.failed != 1 {
		t.Fatalf("expected 1 failure, got %d", m.failed)
	}

	m.done = true
	view := m.View()
	if !strings.Contains(view, "done: formatting (2/2)") {
		t.Fatalf("unexpected header:\n%s", view)
	}
	if !strings.Contains(view, "1 file(s) failed") {
		t.Fatalf("failure count missing:\n%s", view)
	}
}

func TestVisibleCapsLongLists(t *testing.T) {
	files := make([]string, 30)
	for i := range files {
		files[i] = strings.Repeat("x", i+1) + ".luau"
	}
	m := NewProgressModel("formatting", files, nil).(*progressModel)
	m.applyEvent(driver.Event{File: files[25], Stage: driver.StageFormat, Status: driver.StatusWorking})

	vis := m.visible()
	if len(vis) != m.maxListed {
		t.Fatalf("expected %d visible items, got %d", m.maxListed, len(vis))
	}
	if vis[0].path != files[25] {
		t.Fatalf("in-flight file should be listed first, got %q", vis[0].path)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 5); got == "abcdefgh" || runewidth.StringWidth(got) > 5 {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("abc", 5); got != "abc" {
		t.Fatalf("short value changed: %q", got)
	}
}
