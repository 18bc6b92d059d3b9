package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/token"
)

// detach marks trivia of a token that the caller emits itself.
type detach uint8

const (
	detachLeading detach = 1 << iota
	detachTrailing
)

// memoKey identifies one rendering of a node. A token detached by a caller
// is always the first or last token of the nodes that contain it, so the
// detach state of those two tokens completes the key.
type memoKey struct {
	node        ast.Node
	depth       int
	col         int
	first, last detach
}

type edges struct {
	first, last *token.Token
}

type printer struct {
	cfg      config.Config
	detached map[*token.Token]detach
	memo     map[memoKey]string
	edges    map[ast.Node]edges
}

func newPrinter(cfg config.Config) *printer {
	return &printer{
		cfg:      cfg,
		detached: make(map[*token.Token]detach),
		memo:     make(map[memoKey]string),
		edges:    make(map[ast.Node]edges),
	}
}

func (p *printer) memoKey(n ast.Node, depth, col int) memoKey {
	e, ok := p.edges[n]
	if !ok {
		e = edges{first: ast.FirstToken(n), last: ast.LastToken(n)}
		p.edges[n] = e
	}
	return memoKey{
		node:  n,
		depth: depth,
		col:   col,
		first: p.detached[e.first],
		last:  p.detached[e.last],
	}
}

// detach hides the given trivia of t from tok until the returned func runs.
func (p *printer) detach(t *token.Token, d detach) func() {
	if t == nil {
		return func() {}
	}
	prev := p.detached[t]
	p.detached[t] = prev | d
	return func() {
		if prev == 0 {
			delete(p.detached, t)
		} else {
			p.detached[t] = prev
		}
	}
}

func (p *printer) isDetached(t *token.Token, d detach) bool {
	return p.detached[t]&d != 0
}

func (p *printer) indent(depth int) string {
	return p.cfg.Indent(depth)
}

func (p *printer) nl(depth int) string {
	return "\n" + p.indent(depth)
}

// blanks applies the blank-line policy to a run of n blank lines.
func (p *printer) blanks(n int) int {
	if n <= 0 {
		return 0
	}
	if p.cfg.KeepStatementsSpacing {
		return n
	}
	return 1
}

// textWidth is the display width of s.
func textWidth(s string) int {
	return runewidth.StringWidth(norm.NFC.String(s))
}

// lineWidth is the width of a single line with its indentation removed.
func lineWidth(line string) int {
	return textWidth(strings.TrimLeft(line, " \t"))
}

// advance returns the column after writing s starting at col.
func advance(col int, s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return lineWidth(s[i+1:])
	}
	return col + textWidth(s)
}

// fits reports whether s, written at col, stays within the column width on
// its first and last line. Lines in between belong to nested blocks that
// decided their own layout.
func (p *printer) fits(col int, s string) bool {
	first, rest, multi := strings.Cut(s, "\n")
	if col+textWidth(first) > p.cfg.ColumnWidth {
		return false
	}
	if multi {
		last := rest[strings.LastIndexByte(rest, '\n')+1:]
		if lineWidth(last) > p.cfg.ColumnWidth {
			return false
		}
	}
	return true
}

// endsWithBreak reports whether s ends in a line break followed only by
// indentation, so the next word must not be preceded by a space.
func endsWithBreak(s string) bool {
	i := strings.LastIndexByte(s, '\n')
	if i < 0 {
		return false
	}
	return strings.TrimLeft(s[i+1:], " \t") == ""
}

// openBlock drops the line break that a trailing comment left at the end of
// a block header. The block body starts its own lines.
func openBlock(s string) string {
	if !endsWithBreak(s) {
		return s
	}
	return s[:strings.LastIndexByte(s, '\n')]
}

// join concatenates words with single spaces, skipping empty words and the
// space after a forced line break.
func join(words ...string) string {
	var sb strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		if sb.Len() > 0 && !endsWithBreak(sb.String()) {
			sb.WriteByte(' ')
		}
		sb.WriteString(w)
	}
	return sb.String()
}
