package format

import (
	"fmt"
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/parser"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// expr renders an expression starting at col on a line indented to depth.
func (p *printer) expr(e ast.Expr, depth, col int) string {
	key := p.memoKey(e, depth, col)
	if s, ok := p.memo[key]; ok {
		return s
	}
	s := p.renderExpr(e, depth, col)
	p.memo[key] = s
	return s
}

func (p *printer) renderExpr(e ast.Expr, depth, col int) string {
	cont := depth + 1
	switch e := e.(type) {
	case *ast.Literal:
		return p.tok(&e.Tok, cont)
	case *ast.Vararg:
		return p.tok(&e.Tok, cont)
	case *ast.NameExpr:
		return p.tokAs(&e.Tok, cont, style.RoleVariable)
	case *ast.FieldExpr:
		obj := p.expr(e.Obj, depth, col)
		return obj + p.tok(&e.Dot, cont) + p.tok(&e.Name, cont)
	case *ast.IndexExpr:
		obj := p.expr(e.Obj, depth, col)
		open := p.tok(&e.Open, cont)
		key := p.expr(e.Key, depth, advance(col, obj+open))
		return obj + open + bracketPad(key) + p.tok(&e.Close, cont)
	case *ast.ParenExpr:
		open := p.tok(&e.Open, cont)
		inner := p.expr(e.Inner, depth, advance(col, open))
		return open + inner + p.tok(&e.Close, cont)
	case *ast.CallExpr:
		return p.call(e, depth, col)
	case *ast.FunctionExpr:
		head := join(p.attributes(e.Attrs, cont), p.tok(&e.Function, cont))
		return head + p.funcBody(e.Body, depth, advance(col, head))
	case *ast.TableExpr:
		return p.table(e, depth, col)
	case *ast.UnaryExpr:
		return p.unary(e, depth, col)
	case *ast.BinaryExpr:
		return p.binary(e, depth, col)
	case *ast.CastExpr:
		left := p.expr(e.Expr, depth, col)
		head := join(left, p.tok(&e.Op, cont))
		return join(head, p.typ(e.Type, depth, advance(col, head)+1))
	case *ast.IfExpr:
		return p.ifExpr(e, depth, col)
	case *ast.ErrorExpr:
		panic(fmt.Sprintf("format: error expression reached the renderer at %s", tokenPos(e.Tokens)))
	}
	panic(fmt.Sprintf("format: unhandled expression %T", e))
}

// bracketPad keeps `[ [[x]] ]` from turning into a long bracket.
func bracketPad(s string) string {
	if strings.HasPrefix(s, "[") {
		return " " + s + " "
	}
	return s
}

func tokenPos(toks []token.Token) string {
	if len(toks) == 0 {
		return "<unknown>"
	}
	return toks[0].Span.String()
}

func (p *printer) unary(e *ast.UnaryExpr, depth, col int) string {
	op := p.tok(&e.Op, depth+1)
	if e.Op.Kind == token.KwNot {
		return join(op, p.expr(e.Operand, depth, advance(col, op)+1))
	}
	operand := p.expr(e.Operand, depth, advance(col, op))
	// `- -x` must not become a comment
	if e.Op.Kind == token.Minus && strings.HasPrefix(operand, "-") {
		return op + " " + operand
	}
	return op + operand
}

func isLogical(e ast.Expr) bool {
	b, ok := e.(*ast.BinaryExpr)
	return ok && (b.Op.Kind == token.KwAnd || b.Op.Kind == token.KwOr)
}

func isStringLiteral(e ast.Expr) bool {
	l, ok := e.(*ast.Literal)
	return ok && l.Tok.IsString()
}

// binary renders `left op right`. When that does not fit, the line breaks
// before the operator and the operator starts the continuation line.
func (p *printer) binary(e *ast.BinaryExpr, depth, col int) string {
	cont := depth + 1
	left := p.expr(e.Left, depth, col)
	op := p.tok(&e.Op, cont)
	head := join(left, op)
	// once a chain breaks, every operator of it starts a line
	if l, ok := e.Left.(*ast.BinaryExpr); ok && samePrecedence(l, e) &&
		strings.Contains(left, "\n") && left == p.brokenChain(l, depth, col) {
		return p.brokenChain(e, depth, col)
	}
	rightCol := advance(col, head) + 1
	right := p.expr(e.Right, depth, rightCol)
	if r, ok := chainTail(e); ok && strings.Contains(right, "\n") &&
		right == p.brokenChain(r, depth, rightCol) {
		return p.brokenChain(e, depth, col)
	}
	compact := join(head, right)
	if p.fits(col, compact) {
		return compact
	}
	// a long string is not a wrapping opportunity
	if isStringLiteral(e.Right) {
		return compact
	}
	// `a or b and c` already broke inside the chain on the right
	if isLogical(e.Right) && strings.Contains(right, "\n") && p.fits(col, firstLine(compact)) {
		return compact
	}
	if endsWithBreak(left) {
		return compact
	}
	return p.brokenChain(e, depth, col)
}

// brokenChain puts every operator of a same-precedence chain at the start of
// its own continuation line.
func (p *printer) brokenChain(e *ast.BinaryExpr, depth, col int) string {
	return p.chainLines(e, depth, depth, col)
}

// chainLines is brokenChain for a chain whose first operand is rendered at
// first. The continuation lines stay at depth+1.
func (p *printer) chainLines(e *ast.BinaryExpr, depth, first, col int) string {
	cont := depth + 1
	var left string
	if l, ok := e.Left.(*ast.BinaryExpr); ok && samePrecedence(l, e) {
		left = p.chainLines(l, depth, first, col)
	} else {
		left = p.expr(e.Left, first, col)
	}
	op := p.tok(&e.Op, cont)
	if !endsWithBreak(left) {
		left += p.nl(cont)
	}
	if r, ok := chainTail(e); ok {
		return left + join(op, p.chainLines(r, depth, cont, textWidth(op)+1))
	}
	return left + join(op, p.expr(e.Right, cont, textWidth(op)+1))
}

// chainTail returns the right operand of e when it continues a
// right-associative chain such as `a .. b .. c`.
func chainTail(e *ast.BinaryExpr) (*ast.BinaryExpr, bool) {
	r, ok := e.Right.(*ast.BinaryExpr)
	if !ok || !samePrecedence(r, e) || !parser.RightAssociative(e.Op.Kind) {
		return nil, false
	}
	return r, true
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// ifExpr renders `if c then a elseif d then b else e`. The expanded form puts
// each `elseif`/`else` branch on its own continuation line. A condition that
// spans lines gets lines of its own, and its `then` lines up with `else`.
func (p *printer) ifExpr(e *ast.IfExpr, depth, col int) string {
	cont := depth + 1
	branch := func(kw *token.Token, cond ast.Expr, then *token.Token, value ast.Expr, d, c int) string {
		head := p.tok(kw, d+1)
		if cond != nil {
			condText := p.expr(cond, d, advance(c, head)+1)
			if strings.Contains(condText, "\n") {
				head += p.nl(d+1) + p.expr(cond, d+1, 0) + p.nl(cont) + p.tok(then, d+1)
			} else {
				head = join(head, condText, p.tok(then, d+1))
			}
		}
		return join(head, p.expr(value, d, advance(c, head)+1))
	}

	var parts []string
	parts = append(parts, branch(&e.If, e.Cond, &e.Then, e.ThenExpr, depth, col))
	for _, ei := range e.ElseIfs {
		parts = append(parts, branch(&ei.ElseIf, ei.Cond, &ei.Then, ei.Value, depth, 0))
	}
	parts = append(parts, branch(&e.Else, nil, nil, e.ElseExpr, depth, 0))

	compact := join(parts...)
	if p.fits(col, compact) && !strings.Contains(compact, "\n") {
		return compact
	}

	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, ei := range e.ElseIfs {
		sb.WriteString(p.nl(cont))
		sb.WriteString(branch(&ei.ElseIf, ei.Cond, &ei.Then, ei.Value, cont, 0))
	}
	sb.WriteString(p.nl(cont))
	sb.WriteString(branch(&e.Else, nil, nil, e.ElseExpr, cont, 0))
	return sb.String()
}

func (p *printer) attributes(attrs []*ast.Attribute, depth int) string {
	words := make([]string, 0, len(attrs))
	for _, a := range attrs {
		words = append(words, p.tok(&a.At, depth)+p.tok(&a.Name, depth))
	}
	return join(words...)
}

func samePrecedence(a, b *ast.BinaryExpr) bool {
	return parser.BinaryPrecedence(a.Op.Kind) == parser.BinaryPrecedence(b.Op.Kind)
}
