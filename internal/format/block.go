package format

import (
	"slices"
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/token"
)

// seqState is the Block Sequencer state.
type seqState uint8

const (
	stateFormatting seqState = iota
	stateSkipped
)

type unitKind uint8

const (
	unitStmt   unitKind = iota
	unitSkip            // one statement copied verbatim after `skip`
	unitRegion          // skip-start ... skip-end copied verbatim
)

// unit is one planned element of a block's output.
type unit struct {
	kind     unitKind
	entry    *ast.StmtEntry
	comments []leadComment
	lead     int // blank lines before the unit
	tail     int // blank lines between the comments and the statement
	gap      int // every blank line in the leading trivia
	raw      string
	class    stmtClass
	key      string
	split    bool // first unit of a run split from the previous one
}

// runAccumulator collects consecutive statements of one classification.
type runAccumulator struct {
	class stmtClass
	units []*unit
	// split is set when a wide blank gap closed the previous run of the same
	// classification.
	split bool
}

// runBreak is the number of blank lines that separates two runs of the same
// classification.
const runBreak = 2

// accepts reports whether u continues the current run. A gap of runBreak
// blank lines closes the run even when the classification matches.
func (r *runAccumulator) accepts(u *unit) bool {
	return r.sameClass(u) && u.gap < runBreak
}

func (r *runAccumulator) sameClass(u *unit) bool {
	return len(r.units) > 0 && u.class != classNone && u.class == r.class
}

// flush sorts the run by assigned name and appends it to out. Each position
// keeps the blank lines it had, and the comments above the run stay on top.
func (r *runAccumulator) flush(out []*unit) []*unit {
	if len(r.units) > 1 && r.class != classNone {
		leads := make([]int, len(r.units))
		for i, u := range r.units {
			leads[i] = u.lead
		}
		header, headerTail := r.units[0].takeComments()
		slices.SortStableFunc(r.units, func(a, b *unit) int {
			return strings.Compare(a.key, b.key)
		})
		for i, u := range r.units {
			u.lead = leads[i]
		}
		r.units[0].prependComments(header, headerTail)
	}
	if len(r.units) > 0 {
		r.units[0].split = r.split
	}
	out = append(out, r.units...)
	r.units = nil
	r.class = classNone
	r.split = false
	return out
}

func (r *runAccumulator) push(u *unit) {
	r.class = u.class
	r.units = append(r.units, u)
}

// takeComments detaches the comments above u. A block comment that shares
// its line with the statement stays with it.
func (u *unit) takeComments() ([]leadComment, int) {
	if len(u.comments) == 0 || u.comments[len(u.comments)-1].inline {
		return nil, 0
	}
	comments, tail := u.comments, u.tail
	u.comments, u.tail = nil, 0
	return comments, tail
}

// prependComments puts comments, followed by tail blank lines, above the
// comments u already has.
func (u *unit) prependComments(comments []leadComment, tail int) {
	if len(comments) == 0 {
		return
	}
	if len(u.comments) == 0 {
		u.comments, u.tail = comments, tail
		return
	}
	own := slices.Clone(u.comments)
	own[0].blank = tail
	u.comments = append(comments, own...)
}

// blockBody renders the statements of b at depth followed by the comments
// that precede closer. Every line starts with a newline; an empty block
// without comments renders as "".
func (p *printer) blockBody(b *ast.Block, depth int, closer *token.Token) string {
	units, closerLead, afterMarker := p.plan(b, closer)
	units = p.group(units)

	var sb strings.Builder
	for i, u := range units {
		var next *ast.StmtEntry
		if i+1 < len(units) {
			next = units[i+1].entry
		}
		p.writeUnit(&sb, u, depth, i == 0, next)
	}

	comments, _ := scanLeadingAfter(closerLead, afterMarker)
	if p.writeCommentLines(&sb, comments, depth, len(units) == 0) {
		return strings.TrimSuffix(sb.String(), " ")
	}
	return sb.String()
}

// plan walks the statements, tracking skip regions, and returns the units
// plus the part of the closer's leading trivia still to be rendered.
func (p *printer) plan(b *ast.Block, closer *token.Token) (units []*unit, closerLead []token.Trivia, afterMarker bool) {
	state := stateFormatting
	var (
		raw    strings.Builder
		region *unit
	)
	closerLead = closer.Leading
	for _, e := range b.Stmts {
		lead := ast.FirstToken(e.Stmt).Leading

		if state == stateSkipped {
			k := directiveIndex(lead, directiveSkipEnd)
			if k < 0 {
				raw.WriteString(rawTrivia(lead))
				raw.WriteString(rawEntry(e))
				continue
			}
			raw.WriteString(rawTrivia(lead[:k]))
			raw.WriteString(lead[k].Text)
			region.raw = raw.String()
			state = stateFormatting
			units = append(units, p.planStmt(e, lead[k+1:], true))
			continue
		}

		comments, _ := scanLeading(lead)
		if i := commentWith(comments, directiveSkipStart); i >= 0 {
			region = p.planComments(e, comments[:i+1], unitRegion)
			raw.Reset()
			raw.WriteString(rawTrivia(lead[comments[i].index+1:]))
			raw.WriteString(rawEntry(e))
			region.raw = raw.String()
			units = append(units, region)
			state = stateSkipped
			continue
		}
		if i := commentWith(comments, directiveSkip); i >= 0 {
			u := p.planComments(e, comments[:i+1], unitSkip)
			rest := strings.TrimLeft(rawTrivia(lead[comments[i].index+1:]), " \t\n")
			u.raw = strings.TrimRight(rest+rawEntry(e), " \t\n")
			units = append(units, u)
			continue
		}
		units = append(units, p.planStmt(e, lead, false))
	}

	if state == stateSkipped {
		k := directiveIndex(closerLead, directiveSkipEnd)
		if k < 0 {
			// an unterminated region runs to the end of the block
			raw.WriteString(rawTrivia(closerLead))
			region.raw = strings.TrimRight(raw.String(), " \t\n")
			return units, nil, false
		}
		raw.WriteString(rawTrivia(closerLead[:k]))
		raw.WriteString(closerLead[k].Text)
		region.raw = raw.String()
		return units, closerLead[k+1:], true
	}
	return units, closerLead, false
}

func (p *printer) planStmt(e *ast.StmtEntry, lead []token.Trivia, afterMarker bool) *unit {
	comments, tail := scanLeadingAfter(lead, afterMarker)
	u := &unit{kind: unitStmt, entry: e, comments: comments, tail: tail}
	for _, c := range comments {
		u.gap += c.blank
	}
	u.gap += tail
	if len(comments) > 0 {
		u.lead = comments[0].blank
		u.comments = slices.Clone(comments)
		u.comments[0].blank = 0
	} else {
		u.lead = tail
		u.tail = 0
	}
	u.class, u.key = classify(e.Stmt, p.cfg)
	return u
}

func (p *printer) planComments(e *ast.StmtEntry, comments []leadComment, kind unitKind) *unit {
	u := &unit{kind: kind, entry: e, comments: slices.Clone(comments)}
	u.lead = u.comments[0].blank
	u.comments[0].blank = 0
	return u
}

// group reorders runs of require and service statements.
func (p *printer) group(units []*unit) []*unit {
	out := make([]*unit, 0, len(units))
	var run runAccumulator
	for _, u := range units {
		if run.accepts(u) {
			run.push(u)
			continue
		}
		split := run.sameClass(u)
		out = run.flush(out)
		run.split = split
		run.push(u)
	}
	return run.flush(out)
}

func (p *printer) writeUnit(sb *strings.Builder, u *unit, depth int, first bool, next *ast.StmtEntry) {
	lead := p.blanks(u.lead)
	if u.split {
		// the separation must survive blank-line compression
		lead = max(lead, runBreak)
	}
	if first {
		lead = 0
	}
	sb.WriteString(strings.Repeat("\n", lead))

	inline := false
	if len(u.comments) > 0 {
		// the lead blank lines are already written
		inline = p.writeCommentLines(sb, u.comments, depth, true)
	}

	switch u.kind {
	case unitRegion:
		sb.WriteString(u.raw)
		return
	case unitSkip:
		sb.WriteString(p.nl(depth))
		sb.WriteString(u.raw)
		return
	}

	if !inline {
		if len(u.comments) > 0 {
			sb.WriteString(strings.Repeat("\n", p.blanks(u.tail)))
		}
		sb.WriteString(p.nl(depth))
	}

	e := u.entry
	head, last := ast.FirstToken(e.Stmt), ast.LastToken(e.Stmt)
	restoreFirst := p.detach(head, detachLeading)
	restoreLast := p.detach(last, detachTrailing)
	text := p.stmt(e.Stmt, depth)
	restoreLast()
	restoreFirst()

	sb.WriteString(strings.TrimRight(text, " \t"))
	sb.WriteString(p.semicolon(e, next))
	sb.WriteString(p.trailingComments(last.Trailing, depth+1))
	sb.WriteString(p.droppedComments(e.Semi, depth+1))
}

// semicolon applies the semicolon policy. A `;` is always kept in front of
// a statement starting with `(`, which would otherwise continue a call.
func (p *printer) semicolon(e *ast.StmtEntry, next *ast.StmtEntry) string {
	switch p.cfg.Semicolon {
	case config.SemicolonAlways:
		return ";"
	case config.SemicolonKeep:
		if e.Semi != nil {
			return ";"
		}
	}
	if next != nil {
		if t := ast.FirstToken(next.Stmt); t != nil && t.Kind == token.LParen {
			return ";"
		}
	}
	return ""
}

func commentWith(comments []leadComment, d directive) int {
	for i, c := range comments {
		if commentDirective(c.tv) == d {
			return i
		}
	}
	return -1
}

func directiveIndex(list []token.Trivia, d directive) int {
	for i, tv := range list {
		if commentDirective(tv) == d {
			return i
		}
	}
	return -1
}

func rawTrivia(list []token.Trivia) string {
	var sb strings.Builder
	for _, tv := range list {
		sb.WriteString(tv.Text)
	}
	return sb.String()
}

// rawEntry reproduces a statement and its semicolon as written, without the
// leading trivia of its first token.
func rawEntry(e *ast.StmtEntry) string {
	var sb strings.Builder
	first := ast.FirstToken(e.Stmt)
	write := func(t *token.Token) bool {
		if t != first {
			sb.WriteString(rawTrivia(t.Leading))
		}
		sb.WriteString(t.Text)
		sb.WriteString(rawTrivia(t.Trailing))
		return true
	}
	ast.EachToken(e.Stmt, write)
	if e.Semi != nil {
		write(e.Semi)
	}
	return sb.String()
}
