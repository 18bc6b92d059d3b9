package format

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// funcBody renders everything after `function name`: generics, parameters,
// return annotation, the body and `end`. Parameters expand one per line when
// the signature does not fit; the return type decides its own layout.
func (p *printer) funcBody(b *ast.FuncBody, depth, col int) string {
	cont := depth + 1
	sig := p.genericDecl(b.Generics, depth, col)

	params := &listLayout{open: &b.Params.Open, close: &b.Params.Close}
	for _, it := range b.Params.Inner.Items {
		prm := it.Node
		params.entries = append(params.entries, entry{
			node: prm,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.param(prm, d, c)
			},
		})
	}
	sig += p.list(params, depth, advance(col, sig), true)

	if b.Colon != nil {
		sig += p.tok(b.Colon, cont)
		sig = join(sig, p.typ(b.Ret, depth, advance(col, sig)+1))
	}

	// a trailing line comment after the signature keeps `end` off its line
	broke := endsWithBreak(sig)
	sig = openBlock(sig)
	body := p.blockBody(b.Body, depth+1, &b.End)
	if body == "" && !broke {
		return sig + " " + p.closeTok(&b.End, depth)
	}
	return sig + body + p.nl(depth) + p.closeTok(&b.End, depth)
}

func (p *printer) param(prm *ast.Param, depth, col int) string {
	cont := depth + 1
	name := p.tokAs(&prm.Name, cont, style.RoleVariable)
	if prm.Colon == nil {
		return name
	}
	name += p.tok(prm.Colon, cont)
	return join(name, p.typ(prm.Type, depth, advance(col, name)+1))
}

// genericDecl renders `<T, U... = ...>`.
func (p *printer) genericDecl(g *ast.GenericDecl, depth, col int) string {
	if g == nil {
		return ""
	}
	l := &listLayout{open: &g.Open, close: &g.Close}
	for _, it := range g.Inner.Items {
		gp := it.Node
		l.entries = append(l.entries, entry{
			node: gp,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.genericParam(gp, d, c)
			},
		})
	}
	return p.list(l, depth, col, true)
}

func (p *printer) genericParam(gp *ast.GenericParam, depth, col int) string {
	cont := depth + 1
	s := p.tokAs(&gp.Name, cont, style.RoleType) + p.tok(gp.Dots, cont)
	if gp.Eq == nil {
		return s
	}
	s = join(s, p.tok(gp.Eq, cont))
	return join(s, p.typ(gp.Default, depth, advance(col, s)+1))
}

// closeTok renders a block terminator whose leading comments were already
// placed inside the block by blockBody.
func (p *printer) closeTok(t *token.Token, depth int) string {
	restore := p.detach(t, detachLeading)
	defer restore()
	return p.tok(t, depth+1)
}
