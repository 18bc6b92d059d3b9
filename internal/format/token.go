package format

import (
	"strings"

	"luaufmt/internal/style"
	"luaufmt/internal/token"
)

// tok renders a token with its comments. depth is the indentation used when
// a comment forces a line break.
func (p *printer) tok(t *token.Token, depth int) string {
	return p.tokAs(t, depth, style.RoleNone)
}

func (p *printer) tokAs(t *token.Token, depth int, role style.Role) string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	if !p.isDetached(t, detachLeading) {
		sb.WriteString(p.leadingInline(t.Leading, depth))
	}
	sb.WriteString(p.tokenText(t, depth, role))
	if !p.isDetached(t, detachTrailing) {
		sb.WriteString(p.trailingInline(t.Trailing, depth))
	}
	return sb.String()
}

// tokenText renders the lexeme alone.
func (p *printer) tokenText(t *token.Token, depth int, role style.Role) string {
	switch t.Kind {
	case token.Ident:
		return style.ApplyRole(p.cfg, role, t.Text)
	case token.String:
		return p.quotedString(t.Text, depth)
	case token.InterpString:
		return p.interpString(t.Text)
	}
	return t.Text
}

// droppedComments renders every comment of t as trailing text, for tokens the
// formatter drops.
func (p *printer) droppedComments(t *token.Token, depth int) string {
	if t == nil {
		return ""
	}
	return p.trailingComments(t.Leading, depth) + p.trailingComments(t.Trailing, depth)
}

// quotedString applies the quote style and splits literals wider than
// string_width with `\z` continuations indented to depth.
func (p *printer) quotedString(lit string, depth int) string {
	lit = joinContinuations(lit)
	lit = style.Requote(lit, p.cfg.QuoteStyle)
	if strings.ContainsRune(lit, '\n') || textWidth(lit) <= p.cfg.StringWidth {
		return lit
	}
	return splitString(lit, p.cfg.StringWidth, p.nl(depth))
}

// joinContinuations removes `\z` escapes and the whitespace they skip.
func joinContinuations(lit string) string {
	if !strings.Contains(lit, `\z`) {
		return lit
	}
	var sb strings.Builder
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 >= len(lit) {
			sb.WriteByte(c)
			continue
		}
		if lit[i+1] != 'z' {
			sb.WriteByte(c)
			sb.WriteByte(lit[i+1])
			i++
			continue
		}
		i += 2
		for i < len(lit) && isSpaceByte(lit[i]) {
			i++
		}
		i--
	}
	return sb.String()
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// splitString breaks a quoted literal after spaces that are followed by a
// non-space character, so `\z` skips nothing but the inserted break.
func splitString(lit string, width int, brk string) string {
	var (
		chunks    []string
		start     int
		lastBreak = -1
	)
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c == '\\' {
			i++
			continue
		}
		if c != ' ' || i+1 >= len(lit)-1 || isSpaceByte(lit[i+1]) {
			continue
		}
		cut := i + 1
		if textWidth(lit[start:cut]) > width && lastBreak > start {
			chunks = append(chunks, lit[start:lastBreak])
			start = lastBreak
		}
		lastBreak = cut
	}
	if textWidth(lit[start:]) > width && lastBreak > start {
		chunks = append(chunks, lit[start:lastBreak])
		start = lastBreak
	}
	chunks = append(chunks, lit[start:])
	return strings.Join(chunks, `\z`+brk)
}
