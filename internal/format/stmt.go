package format

import (
	"fmt"
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// stmt renders a statement whose first line starts after the indentation
// for depth.
func (p *printer) stmt(s ast.Stmt, depth int) string {
	cont := depth + 1
	switch s := s.(type) {
	case *ast.LocalAssign:
		head := join(p.tok(&s.Local, cont), p.bindings(s.Names, depth, 6))
		if s.Eq == nil {
			return head
		}
		head = join(head, p.tok(s.Eq, cont))
		return join(head, p.exprList(s.Values, depth, advance(0, head)+1))
	case *ast.Assign:
		head := join(p.exprList(s.Targets, depth, 0), p.tok(&s.Eq, cont))
		return join(head, p.exprList(s.Values, depth, advance(0, head)+1))
	case *ast.CompoundAssign:
		head := join(p.expr(s.Target, depth, 0), p.tok(&s.Op, cont))
		return join(head, p.expr(s.Value, depth, advance(0, head)+1))
	case *ast.CallStmt:
		return p.call(s.Call, depth, 0)
	case *ast.DoStmt:
		return openBlock(p.tok(&s.Do, cont)) + p.blockTail(s.Body, depth, &s.End)
	case *ast.WhileStmt:
		return p.condHead(&s.While, s.Cond, &s.Do, depth) + p.blockTail(s.Body, depth, &s.End)
	case *ast.RepeatStmt:
		head := openBlock(p.tok(&s.Repeat, cont)) + p.blockTail(s.Body, depth, &s.Until)
		return join(head, p.expr(s.Cond, depth, advance(0, head)+1))
	case *ast.IfStmt:
		return p.ifStmt(s, depth)
	case *ast.NumericFor:
		head := join(p.tok(&s.For, cont), p.binding(s.Var, depth, 4), p.tok(&s.Eq, cont))
		head = join(head, p.expr(s.Start, depth, advance(0, head)+1)+p.tok(&s.Comma, cont))
		head = join(head, p.expr(s.Limit, depth, advance(0, head)+1))
		if s.Comma2 != nil {
			head += p.tok(s.Comma2, cont)
			head = join(head, p.expr(s.Step, depth, advance(0, head)+1))
		}
		return openBlock(join(head, p.tok(&s.Do, cont))) + p.blockTail(s.Body, depth, &s.End)
	case *ast.GenericFor:
		head := join(p.tok(&s.For, cont), p.bindings(s.Vars, depth, 4), p.tok(&s.In, cont))
		head = join(head, p.exprList(s.Exprs, depth, advance(0, head)+1))
		return openBlock(join(head, p.tok(&s.Do, cont))) + p.blockTail(s.Body, depth, &s.End)
	case *ast.FunctionDecl:
		head := join(p.attributes(s.Attrs, cont), p.tok(&s.Function, cont), p.funcName(s.Name, cont))
		return head + p.funcBody(s.Body, depth, advance(0, head))
	case *ast.LocalFunction:
		head := join(p.attributes(s.Attrs, cont), p.tok(&s.Local, cont), p.tok(&s.Function, cont),
			p.tokAs(&s.Name, cont, style.RoleVariable))
		return head + p.funcBody(s.Body, depth, advance(0, head))
	case *ast.ReturnStmt:
		head := p.tok(&s.Return, cont)
		if s.Values.Len() == 0 {
			return head
		}
		return join(head, p.exprList(s.Values, depth, advance(0, head)+1))
	case *ast.BreakStmt:
		return p.tok(&s.Break, cont)
	case *ast.ContinueStmt:
		return p.tok(&s.Continue, cont)
	case *ast.TypeDecl:
		head := join(p.tok(s.Export, cont), p.tok(&s.Type, cont), p.tokAs(&s.Name, cont, style.RoleType))
		head += p.genericDecl(s.Generics, depth, advance(0, head))
		head = join(head, p.tok(&s.Eq, cont))
		return join(head, p.typ(s.Value, depth, advance(0, head)+1))
	case *ast.TypeFunction:
		head := join(p.tok(s.Export, cont), p.tok(&s.Type, cont), p.tok(&s.Function, cont),
			p.tokAs(&s.Name, cont, style.RoleType))
		return head + p.funcBody(s.Body, depth, advance(0, head))
	case *ast.ErrorStmt:
		panic(fmt.Sprintf("format: error statement reached the renderer at %s", tokenPos(s.Tokens)))
	}
	panic(fmt.Sprintf("format: unhandled statement %T", s))
}

// blockTail renders a nested block followed by its terminator.
func (p *printer) blockTail(b *ast.Block, depth int, closer *token.Token) string {
	return p.blockBody(b, depth+1, closer) + p.nl(depth) + p.closeTok(closer, depth)
}

// condHead renders `while cond do` / `if cond then`. A condition that spans
// several lines moves to its own indented line. A block always follows.
func (p *printer) condHead(kw *token.Token, cond ast.Expr, kw2 *token.Token, depth int) string {
	cont := depth + 1
	head := p.tok(kw, cont)
	c := p.expr(cond, depth, advance(0, head)+1)
	if !strings.Contains(c, "\n") {
		return openBlock(join(head, c, p.tok(kw2, cont)))
	}
	return openBlock(head + p.nl(cont) + p.expr(cond, cont, 0) + p.nl(depth) + p.tok(kw2, cont))
}

func (p *printer) ifStmt(s *ast.IfStmt, depth int) string {
	var sb strings.Builder
	sb.WriteString(p.condHead(&s.If, s.Cond, &s.Then, depth))
	next := &s.End
	switch {
	case len(s.ElseIfs) > 0:
		next = &s.ElseIfs[0].ElseIf
	case s.Else != nil:
		next = &s.Else.Else
	}
	sb.WriteString(p.blockBody(s.Body, depth+1, next))
	for i, ei := range s.ElseIfs {
		sb.WriteString(p.nl(depth))
		restore := p.detach(&ei.ElseIf, detachLeading)
		sb.WriteString(p.condHead(&ei.ElseIf, ei.Cond, &ei.Then, depth))
		restore()
		next = &s.End
		switch {
		case i+1 < len(s.ElseIfs):
			next = &s.ElseIfs[i+1].ElseIf
		case s.Else != nil:
			next = &s.Else.Else
		}
		sb.WriteString(p.blockBody(ei.Body, depth+1, next))
	}
	if s.Else != nil {
		sb.WriteString(p.nl(depth))
		sb.WriteString(openBlock(p.closeTok(&s.Else.Else, depth)))
		sb.WriteString(p.blockBody(s.Else.Body, depth+1, &s.End))
	}
	sb.WriteString(p.nl(depth))
	sb.WriteString(p.closeTok(&s.End, depth))
	return sb.String()
}

func (p *printer) binding(b *ast.Binding, depth, col int) string {
	cont := depth + 1
	name := p.tokAs(&b.Name, cont, style.RoleVariable)
	if b.Colon == nil {
		return name
	}
	name += p.tok(b.Colon, cont)
	return join(name, p.typ(b.Type, depth, advance(col, name)+1))
}

func (p *printer) bindings(l ast.List[*ast.Binding], depth, col int) string {
	s := ""
	for _, it := range l.Items {
		s = join(s, p.binding(it.Node, depth, advance(col, s)+boolInt(s != "")))
		s += p.tok(it.Sep, depth+1)
	}
	return s
}

func (p *printer) exprList(l ast.List[ast.Expr], depth, col int) string {
	s := ""
	for _, it := range l.Items {
		s = join(s, p.expr(it.Node, depth, advance(col, s)+boolInt(s != "")))
		s += p.tok(it.Sep, depth+1)
	}
	return s
}

func (p *printer) funcName(n *ast.FuncName, depth int) string {
	var sb strings.Builder
	for i := range n.Parts.Items {
		it := &n.Parts.Items[i]
		role := style.RoleNone
		if i == 0 {
			role = style.RoleVariable
		}
		sb.WriteString(p.tokAs(&it.Node, depth, role))
		sb.WriteString(p.tok(it.Sep, depth))
	}
	if n.Method != nil {
		sb.WriteString(p.tok(n.Colon, depth))
		sb.WriteString(p.tokAs(n.Method, depth, style.RoleMethod))
	}
	return sb.String()
}
