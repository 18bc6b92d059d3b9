package format

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/style"
)

// table renders a table constructor. The compact form `{ a, b }` is used
// only when the compact_table policy allows it and it fits.
func (p *printer) table(t *ast.TableExpr, depth, col int) string {
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
				return p.tableField(f, d, c)
			},
		})
	}
	return p.list(l, depth, col, style.CompactTable(p.cfg.CompactTable, t))
}

func (p *printer) tableField(f *ast.TableField, depth, col int) string {
	cont := depth + 1
	var head string
	switch f.Kind {
	case ast.FieldPositional:
		return p.expr(f.Value, depth, col)
	case ast.FieldNamed:
		head = p.tok(&f.Name, cont)
	case ast.FieldIndexed:
		open := p.tok(&f.LBrack, cont)
		key := p.expr(f.Key, depth, advance(col, open))
		head = open + bracketPad(key) + p.tok(&f.RBrack, cont)
	}
	head = join(head, p.tok(f.Eq, cont))
	return join(head, p.expr(f.Value, depth, advance(col, head)+1))
}
