package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"luaufmt/internal/config"
	"luaufmt/internal/format"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFormatPathsWritesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.luau")
	b := filepath.Join(dir, "sub", "b.lua")
	writeTestFile(t, a, "local   x=1")
	writeTestFile(t, b, "local y = 2\n")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "local   z=1")
	writeTestFile(t, filepath.Join(dir, ".git", "hook.luau"), "local   z=1")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d: %+v", len(results), results)
	}
	if results[0].Path != a || results[1].Path != b {
		t.Fatalf("unexpected order: %s, %s", results[0].Path, results[1].Path)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("want only a.luau changed, got %v and %v", results[0].Changed, results[1].Changed)
	}
	if got := readTestFile(t, a); got != "local x = 1\n" {
		t.Fatalf("a.luau: want formatted content, got %q", got)
	}
	if got := readTestFile(t, filepath.Join(dir, ".git", "hook.luau")); got != "local   z=1" {
		t.Fatalf(".git must be skipped, got %q", got)
	}
}

func TestFormatPathsCheckDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.luau")
	writeTestFile(t, a, "local   x=1")

	results, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("want one changed result, got %+v", results)
	}
	if string(results[0].Original) != "local   x=1" || string(results[0].Formatted) != "local x = 1\n" {
		t.Fatalf("unexpected check payload: %q -> %q", results[0].Original, results[0].Formatted)
	}
	if got := readTestFile(t, a); got != "local   x=1" {
		t.Fatalf("check mode modified the file: %q", got)
	}
}

func TestFormatPathsDiscoversConfig(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "luaufmt.toml"), "quote_style = \"Single\"\n")
	a := filepath.Join(dir, "src", "a.luau")
	writeTestFile(t, a, "local s = \"x\"\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if got := string(results[0].Formatted); got != "local s = 'x'\n" {
		t.Fatalf("want single quotes from config, got %q", got)
	}
	if got := readTestFile(t, a); got != "local s = \"x\"\n" {
		t.Fatalf("stdout mode modified the file: %q", got)
	}
}

func TestFormatPathsExplicitConfigWins(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "luaufmt.toml"), "quote_style = \"Single\"\n")
	a := filepath.Join(dir, "a.luau")
	writeTestFile(t, a, "local s = 'x'\n")

	cfg := config.Default()
	results, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Stdout: true, Config: &cfg})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if got := string(results[0].Formatted); got != "local s = \"x\"\n" {
		t.Fatalf("want default double quotes, got %q", got)
	}
}

func TestFormatPathsReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.luau")
	good := filepath.Join(dir, "good.luau")
	writeTestFile(t, bad, "local = ")
	writeTestFile(t, good, "local   x=1")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !errors.Is(results[0].Err, format.ErrErroneousCst) {
		t.Fatalf("want ErrErroneousCst for bad.luau, got %v", results[0].Err)
	}
	if got := readTestFile(t, bad); got != "local = " {
		t.Fatalf("erroneous file was modified: %q", got)
	}
	if results[1].Err != nil || !results[1].Changed {
		t.Fatalf("good.luau should still be formatted: %+v", results[1])
	}
}

func TestFormatPathsNoSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "readme.md"), "# hi")
	_, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if !errors.Is(err, ErrNoSourceFiles) {
		t.Fatalf("want ErrNoSourceFiles, got %v", err)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	a := filepath.Join(dir, "src", "a.luau")
	writeTestFile(t, a, "local   x=1")

	opts := FormatOptions{Cache: cache}
	first, err := FormatPaths(context.Background(), []string{a}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if first[0].Cached || !first[0].Changed {
		t.Fatalf("first run: %+v", first[0])
	}
	second, err := FormatPaths(context.Background(), []string{a}, opts)
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !second[0].Cached || second[0].Changed {
		t.Fatalf("second run should hit the cache: %+v", second[0])
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestFormatPathsReportsProgress(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.luau")
	writeTestFile(t, a, "local x = 1\n")

	sink := &recordingSink{}
	if _, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Progress: sink}); err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	var queued, done bool
	for _, ev := range sink.events {
		if ev.File == a && ev.Status == StatusQueued {
			queued = true
		}
		if ev.File == a && ev.Status == StatusDone {
			done = true
		}
	}
	if !queued || !done {
		t.Fatalf("missing queued/done events: %+v", sink.events)
	}
}

func TestFormatReader(t *testing.T) {
	cfg := config.Default()
	res, err := FormatReader(stringsReader("local   x=1"), FormatOptions{Config: &cfg})
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil || string(res.Formatted) != "local x = 1\n" || res.Path != StdinPath {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestJobLimit(t *testing.T) {
	if got := jobLimit(8, 3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := jobLimit(0, 1); got != 1 {
		t.Fatalf("want 1, got %d", got)
	}
}

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "luaufmt.toml")
	writeTestFile(t, cfgPath, "column_width = 80\n")
	a := filepath.Join(dir, "src", "a.luau")
	writeTestFile(t, a, "local x = 1\n")

	cfg, found, err := ResolveConfig(a)
	if err != nil {
		t.Fatalf("ResolveConfig: %v", err)
	}
	if found != cfgPath {
		t.Fatalf("want config %q, got %q", cfgPath, found)
	}
	if cfg.ColumnWidth != 80 {
		t.Fatalf("want column width 80, got %d", cfg.ColumnWidth)
	}

	writeTestFile(t, cfgPath, "colum_width = 80\n")
	if _, _, err := ResolveConfig(a); err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}
