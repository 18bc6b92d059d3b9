package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"luaufmt/internal/diag"
	"luaufmt/internal/source"
)

type palette struct {
	err, warn, info, code, loc, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		loc:    color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty writes diagnostics in a human-readable form. The bag is expected
// to be sorted. Each entry looks like
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// followed by the source line with a ^~~~ underline below the span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, pal, fs, d.Primary, opts.PathMode, pal.severity(d.Severity).Sprint(d.Severity.String())+" "+pal.code.Sprint(d.Code.ID()), d.Message)
		writeSnippet(w, pal, fs, d.Primary, opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			writeHeader(w, pal, fs, n.Span, opts.PathMode, pal.note.Sprint("note"), n.Msg)
			writeSnippet(w, pal, fs, n.Span, 0)
		}
	}
}

func writeHeader(w io.Writer, pal palette, fs *source.FileSet, sp source.Span, mode PathMode, label, msg string) {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	loc := fmt.Sprintf("%s:%d:%d", displayPath(f.Path, mode), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s: %s\n", pal.loc.Sprint(loc), label, msg)
}

func writeSnippet(w io.Writer, pal palette, fs *source.FileSet, sp source.Span, context uint8) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), f.GetLine(ln))
	}

	line := f.GetLine(start.Line)
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	width := 1
	switch {
	case end.Line == start.Line && end.Col > start.Col:
		stop := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(line[col:stop]), 1)
	case end.Line > start.Line:
		width = max(runewidth.StringWidth(line[col:]), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), caretPad(line[:col]), pal.caret.Sprint(marker))
}

// caretPad mirrors the prefix of a line in blanks so the underline lands
// under the right column. Tabs are kept as tabs.
func caretPad(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
