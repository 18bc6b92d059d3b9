package format

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

func (p *printer) call(e *ast.CallExpr, depth, col int) string {
	cont := depth + 1
	fn := p.expr(e.Fn, depth, col)
	if e.Method != nil {
		fn += p.tok(e.Colon, cont) + p.tokAs(e.Method, cont, style.RoleMethod)
	}
	return fn + p.callArgs(e.Args, depth, advance(col, fn))
}

// bareStrings and bareTables report whether the function_parenthesis policy
// calls `f "x"` and `f { ... }` without parentheses.
func (p *printer) bareStrings() bool {
	fp := p.cfg.FunctionParenthesis
	return fp == config.ParensRemoveForStrings || fp == config.ParensRemoveWhenPossible
}

func (p *printer) bareTables() bool {
	fp := p.cfg.FunctionParenthesis
	return fp == config.ParensRemoveForTables || fp == config.ParensRemoveWhenPossible
}

func (p *printer) callArgs(args ast.CallArgs, depth, col int) string {
	cont := depth + 1
	keep := p.cfg.FunctionParenthesis == config.ParensKeep
	switch a := args.(type) {
	case *ast.ParenArgs:
		if !keep && a.Args.Len() == 1 && a.Args.Items[0].Sep == nil &&
			!token.HasComments(a.Open.Leading) && !token.HasComments(a.Open.Trailing) &&
			!token.HasComments(a.Close.Leading) {
			switch arg := a.Args.Items[0].Node.(type) {
			case *ast.Literal:
				if p.bareStrings() && (arg.Tok.Kind == token.String || arg.Tok.Kind == token.LongString) {
					return " " + p.tok(&arg.Tok, cont) + p.droppedParen(&a.Close, cont)
				}
			case *ast.TableExpr:
				if p.bareTables() {
					return " " + p.table(arg, depth, col+1) + p.droppedParen(&a.Close, cont)
				}
			}
		}
		return p.parenArgs(a, depth, col)
	case *ast.StringArgs:
		if keep || p.bareStrings() {
			return " " + p.tok(&a.Tok, cont)
		}
		return "(" + p.tok(&a.Tok, cont) + ")"
	case *ast.TableArgs:
		if keep || p.bareTables() {
			return " " + p.table(a.Table, depth, col+1)
		}
		return "(" + p.table(a.Table, depth, col+1) + ")"
	}
	return ""
}

// droppedParen renders the comments after a `)` that is not written. They
// belong to the statement when it detached the paren's trailing trivia.
func (p *printer) droppedParen(t *token.Token, depth int) string {
	if p.isDetached(t, detachTrailing) {
		return ""
	}
	return p.trailingInline(t.Trailing, depth)
}

func (p *printer) parenArgs(a *ast.ParenArgs, depth, col int) string {
	l := &listLayout{open: &a.Open, close: &a.Close}
	for _, it := range a.Args.Items {
		e := it.Node
		l.entries = append(l.entries, entry{
			node: e,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.expr(e, d, c)
			},
		})
	}
	return p.list(l, depth, col, true)
}
