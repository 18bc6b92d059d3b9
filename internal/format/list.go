package format

import (
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/token"
)

// entry is one element of a bracketed list.
type entry struct {
	node   ast.Node
	sep    *token.Token
	render func(depth, col int) string
}

// listLayout describes a bracketed, separated list such as call arguments,
// parameters or table fields.
type listLayout struct {
	open, close *token.Token
	entries     []entry
	// pad puts a space inside the brackets in compact form: `{ a }`.
	pad bool
	// trailingCompact and trailingExpanded add a separator after the last
	// entry in each form.
	trailingCompact  bool
	trailingExpanded bool
}

// hasComments reports whether comments sit anywhere between the brackets.
func (l *listLayout) hasComments() bool {
	if token.HasComments(l.open.Trailing) || token.HasComments(l.close.Leading) {
		return true
	}
	for _, e := range l.entries {
		if ast.HasComments(e.node, false) {
			return true
		}
		if e.sep != nil && e.sep.HasComments() {
			return true
		}
	}
	return false
}

// compact renders `(a, b)` on one line. The caller must make sure there are
// no comments inside the brackets.
func (p *printer) compactList(l *listLayout, depth, col int) string {
	var sb strings.Builder
	sb.WriteString(p.tok(l.open, depth+1))
	if len(l.entries) > 0 && l.pad {
		sb.WriteByte(' ')
	}
	for i, e := range l.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.render(depth, advance(col, sb.String())))
	}
	if len(l.entries) > 0 {
		if l.trailingCompact {
			sb.WriteByte(',')
		}
		if l.pad {
			sb.WriteByte(' ')
		}
	}
	sb.WriteString(p.tok(l.close, depth))
	return sb.String()
}

// expandedList renders one entry per line at depth+1 with the closing bracket
// on its own line. Comments around each entry stay on that entry's line.
func (p *printer) expandedList(l *listLayout, depth int) string {
	inner := depth + 1
	var sb strings.Builder

	restoreOpen := p.detach(l.open, detachTrailing)
	sb.WriteString(p.tok(l.open, inner))
	restoreOpen()
	sb.WriteString(p.trailingComments(l.open.Trailing, inner))

	for i, e := range l.entries {
		first, last := ast.FirstToken(e.node), ast.LastToken(e.node)
		comments, tail := scanLeading(first.Leading)
		inline := p.writeCommentLines(&sb, comments, inner, i == 0)
		if !inline {
			blank := p.blanks(tail)
			if i == 0 && len(comments) == 0 {
				blank = 0
			}
			sb.WriteString(strings.Repeat("\n", blank))
			sb.WriteString(p.nl(inner))
		}

		restoreFirst := p.detach(first, detachLeading)
		restoreLast := p.detach(last, detachTrailing)
		sb.WriteString(e.render(inner, 0))
		restoreLast()
		restoreFirst()

		isLast := i == len(l.entries)-1
		if !isLast || l.trailingExpanded {
			sb.WriteByte(',')
		}
		sb.WriteString(p.trailingComments(last.Trailing, inner))
		sb.WriteString(p.droppedComments(e.sep, inner))
	}

	comments, _ := scanLeading(l.close.Leading)
	p.writeCommentLines(&sb, comments, inner, len(l.entries) == 0)
	restoreClose := p.detach(l.close, detachLeading)
	sb.WriteString(p.nl(depth))
	sb.WriteString(p.tok(l.close, depth))
	restoreClose()
	return sb.String()
}

// list picks the compact form when allowed and it fits, else the expanded one.
func (p *printer) list(l *listLayout, depth, col int, compactOK bool) string {
	if len(l.entries) == 0 && !l.hasComments() {
		return p.tok(l.open, depth+1) + p.tok(l.close, depth)
	}
	if compactOK && !l.hasComments() {
		s := p.compactList(l, depth, col)
		if p.fits(col, s) {
			return s
		}
	}
	return p.expandedList(l, depth)
}
