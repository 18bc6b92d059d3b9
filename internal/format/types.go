package format

import (
	"fmt"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// typ renders a type annotation starting at col on a line indented to depth.
func (p *printer) typ(t ast.Type, depth, col int) string {
	key := p.memoKey(t, depth, col)
	if s, ok := p.memo[key]; ok {
		return s
	}
	s := p.renderType(t, depth, col)
	p.memo[key] = s
	return s
}

func (p *printer) renderType(t ast.Type, depth, col int) string {
	cont := depth + 1
	switch t := t.(type) {
	case *ast.NamedType:
		s := ""
		if t.Module != nil {
			s = p.tokAs(t.Module, cont, style.RoleVariable) + p.tok(t.Dot, cont)
		}
		s += p.tokAs(&t.Name, cont, style.RoleType)
		if t.Args != nil {
			s += p.typeList(&t.Args.Open, t.Args.Inner, &t.Args.Close, depth, advance(col, s))
		}
		return s
	case *ast.SingletonType:
		return p.tok(&t.Tok, cont)
	case *ast.TypeofType:
		head := p.tok(&t.Typeof, cont) + p.tok(&t.Open, cont)
		return head + p.expr(t.Expr, depth, advance(col, head)) + p.tok(&t.Close, cont)
	case *ast.TableType:
		return p.tableType(t, depth, col)
	case *ast.FunctionType:
		return p.functionType(t, depth, col)
	case *ast.UnionType:
		return p.setType(t.Leading, t.Members, depth, col)
	case *ast.IntersectionType:
		return p.setType(t.Leading, t.Members, depth, col)
	case *ast.OptionalType:
		return p.typ(t.Inner, depth, col) + p.tok(&t.Question, cont)
	case *ast.ParenType:
		open := p.tok(&t.Open, cont)
		return open + p.typ(t.Inner, depth, advance(col, open)) + p.tok(&t.Close, cont)
	case *ast.TupleType:
		return p.typeList(&t.Open, t.Types, &t.Close, depth, col)
	case *ast.VariadicType:
		dots := p.tok(&t.Dots, cont)
		return dots + p.typ(t.Type, depth, advance(col, dots))
	case *ast.GenericPackType:
		return p.tokAs(&t.Name, cont, style.RoleType) + p.tok(&t.Dots, cont)
	case *ast.ErrorType:
		panic(fmt.Sprintf("format: error type reached the renderer at %s", tokenPos(t.Tokens)))
	}
	panic(fmt.Sprintf("format: unhandled type %T", t))
}

// typeList renders `<A, B>` or `(A, B)`.
func (p *printer) typeList(open *token.Token, types ast.List[ast.Type], close *token.Token, depth, col int) string {
	l := &listLayout{open: open, close: close}
	for _, it := range types.Items {
		t := it.Node
		l.entries = append(l.entries, entry{
			node: t,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.typ(t, d, c)
			},
		})
	}
	return p.list(l, depth, col, true)
}

func (p *printer) tableType(t *ast.TableType, depth, col int) string {
	l := &listLayout{
		open:             &t.Open,
		close:            &t.Close,
		pad:              true,
		trailingCompact:  p.cfg.TrailingCommas == config.TrailingAlways,
		trailingExpanded: p.cfg.TrailingCommas != config.TrailingNever,
	}
	for _, it := range t.Fields.Items {
		f := it.Node
		l.entries = append(l.entries, entry{
			node: f,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.tableTypeField(f, d, c)
			},
		})
	}
	return p.list(l, depth, col, style.CompactTableType(p.cfg.CompactTable, t))
}

func (p *printer) tableTypeField(f *ast.TableTypeField, depth, col int) string {
	cont := depth + 1
	if f.Kind == ast.TypeFieldArray {
		return p.typ(f.Value, depth, col)
	}
	head := p.tok(f.Access, cont)
	switch f.Kind {
	case ast.TypeFieldNamed:
		head = join(head, p.tok(&f.Name, cont))
	case ast.TypeFieldIndexer:
		open := p.tok(&f.LBrack, cont)
		key := p.typ(f.Key, depth, advance(col, join(head, open)))
		head = join(head, open+bracketPad(key)+p.tok(&f.RBrack, cont))
	}
	head += p.tok(f.Colon, cont)
	return join(head, p.typ(f.Value, depth, advance(col, head)+1))
}

func (p *printer) functionType(t *ast.FunctionType, depth, col int) string {
	cont := depth + 1
	sig := p.genericDecl(t.Generics, depth, col)
	l := &listLayout{open: &t.Params.Open, close: &t.Params.Close}
	for _, it := range t.Params.Inner.Items {
		tp := it.Node
		l.entries = append(l.entries, entry{
			node: tp,
			sep:  it.Sep,
			render: func(d, c int) string {
				return p.typeParam(tp, d, c)
			},
		})
	}
	sig += p.list(l, depth, advance(col, sig), true)
	sig = join(sig, p.tok(&t.Arrow, cont))
	return join(sig, p.typ(t.Ret, depth, advance(col, sig)+1))
}

func (p *printer) typeParam(tp *ast.TypeParam, depth, col int) string {
	if tp.Name == nil {
		return p.typ(tp.Type, depth, col)
	}
	cont := depth + 1
	head := p.tokAs(tp.Name, cont, style.RoleVariable) + p.tok(tp.Colon, cont)
	return join(head, p.typ(tp.Type, depth, advance(col, head)+1))
}

// setType renders unions and intersections. The expanded form breaks before
// each `|` or `&`. A leading separator is dropped unless it carries comments.
func (p *printer) setType(leading *token.Token, members ast.List[ast.Type], depth, col int) string {
	cont := depth + 1
	prefix := ""
	if leading != nil && leading.HasComments() {
		prefix = p.tok(leading, cont)
	}
	render := func(broken bool) string {
		s := prefix
		for i, it := range members.Items {
			if i == 0 {
				s = join(s, p.typ(it.Node, depth, advance(col, s)+boolInt(s != "")))
				continue
			}
			sep := p.tok(members.Items[i-1].Sep, cont)
			d := depth
			if broken {
				s += p.nl(cont) + sep
				d = cont
			} else {
				s = join(s, sep)
			}
			s = join(s, p.typ(it.Node, d, advance(col, s)+1))
		}
		return s
	}
	compact := render(false)
	if p.fits(col, compact) || members.Len() < 2 {
		return compact
	}
	return render(true)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
