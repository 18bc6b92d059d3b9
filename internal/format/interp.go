package format

import (
	"strings"

	"luaufmt/internal/config"
	"luaufmt/internal/lexer"
	"luaufmt/internal/source"
	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// interpString applies the naming conventions to the names used inside the
// `{...}` segments of a backtick string. Everything else is copied.
func (p *printer) interpString(lit string) string {
	if p.cfg.VariableCasing == config.CaseNone && p.cfg.MethodCasing == config.CaseNone {
		return lit
	}
	var sb strings.Builder
	for i := 0; i < len(lit); {
		switch c := lit[i]; c {
		case '\\':
			end := min(i+2, len(lit))
			sb.WriteString(lit[i:end])
			i = end
		case '{':
			sb.WriteByte('{')
			n, text := p.interpExpr(lit[i+1:])
			sb.WriteString(text)
			i += 1 + n
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// interpExpr recases the expression at the start of rest up to its closing
// brace. It returns the number of bytes consumed, which excludes the brace.
func (p *printer) interpExpr(rest string) (int, string) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<interp>", []byte(rest)))
	if len(f.Content) != len(rest) {
		return len(rest), rest
	}
	lx := lexer.New(f, lexer.Options{})

	var sb strings.Builder
	depth := 1
	prev := token.LBrace
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF, token.Invalid:
			return len(rest), rest
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		if depth == 0 {
			sb.WriteString(rawTrivia(tok.Leading))
			return int(tok.Span.Start), sb.String()
		}

		text := tok.Text
		switch tok.Kind {
		case token.Ident:
			text = p.interpName(tok.Text, prev, lx.Peek().Kind)
		case token.InterpString:
			text = p.interpString(tok.Text)
		}
		sb.WriteString(rawTrivia(tok.Leading))
		sb.WriteString(text)
		sb.WriteString(rawTrivia(tok.Trailing))
		prev = tok.Kind
	}
}

// interpName picks the role of a name from its neighbours: `a.b` keeps the
// field, `a:b` is a method and `{ key = v }` keeps the key.
func (p *printer) interpName(name string, prev, next token.Kind) string {
	switch {
	case prev == token.Dot:
		return name
	case prev == token.Colon:
		return style.ApplyRole(p.cfg, style.RoleMethod, name)
	case next == token.Assign && (prev == token.LBrace || prev == token.Comma || prev == token.Semicolon):
		return name
	}
	return style.ApplyRole(p.cfg, style.RoleVariable, name)
}
