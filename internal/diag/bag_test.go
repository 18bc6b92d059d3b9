package diag

import (
	"testing"

	"luaufmt/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	r.Report(LexBadNumber, SevWarning, source.Span{Start: 1, End: 2}, "w", nil)
	if b.HasErrors() {
		t.Fatalf("warning counted as error")
	}
	ReportError(r, SynExpectEnd, source.Span{Start: 0, End: 1}, "e")
	ReportError(r, SynExpectEnd, source.Span{Start: 5, End: 6}, "dropped")
	if b.Len() != 2 {
		t.Fatalf("want 2 items, got %d", b.Len())
	}
	if !b.HasErrors() {
		t.Fatalf("error not detected")
	}
	b.Sort()
	if got := b.Items()[0].Code; got != SynExpectEnd {
		t.Fatalf("sort: want %v first, got %v", SynExpectEnd, got)
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	d := NewError(SynUnexpectedToken, source.Span{Start: 3, End: 4}, "x")
	b.Add(d)
	b.Add(d)
	b.Add(d.WithNote(source.Span{}, "n"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("want 1 after dedup, got %d", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:  "LEX1001",
		SynExpectEnd:    "SYN2008",
		IOReadError:     "IO4001",
		CfgInvalidValue: "CFG5001",
		UnknownCode:     "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Fatalf("want %s, got %s", want, got)
		}
	}
	if SynExpectThen.Title() != "Expected 'then'" {
		t.Fatalf("unexpected title %q", SynExpectThen.Title())
	}
}
