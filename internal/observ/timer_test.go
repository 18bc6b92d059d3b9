package observ

import (
	"strings"
	"testing"
)

func TestTimerSummary(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("collect")
	timer.End(idx, "3 files")
	timer.Time("format", func() string { return "" })
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("want 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected note %q", report.Phases[0].Note)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:\n", "collect", "// 3 files", "format", "total"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary %q does not contain %q", summary, want)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("unexpected report %+v", r)
	}
}
