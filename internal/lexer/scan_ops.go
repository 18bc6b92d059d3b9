package lexer

import (
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// scanOperatorOrPunct is greedy: three-byte operators first, then two-byte,
// then single bytes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('.', '.', '.'):
		return lx.emit(token.DotDotDot, start)
	case lx.try3('.', '.', '='):
		return lx.emit(token.DotDotEq, start)
	case lx.try3('/', '/', '='):
		return lx.emit(token.SlashSlashEq, start)
	case lx.try2('.', '.'):
		return lx.emit(token.DotDot, start)
	case lx.try2('/', '/'):
		return lx.emit(token.SlashSlash, start)
	case lx.try2(':', ':'):
		return lx.emit(token.ColonColon, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('~', '='):
		return lx.emit(token.TildeEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	case lx.try2('+', '='):
		return lx.emit(token.PlusEq, start)
	case lx.try2('-', '='):
		return lx.emit(token.MinusEq, start)
	case lx.try2('*', '='):
		return lx.emit(token.StarEq, start)
	case lx.try2('/', '='):
		return lx.emit(token.SlashEq, start)
	case lx.try2('%', '='):
		return lx.emit(token.PercentEq, start)
	case lx.try2('^', '='):
		return lx.emit(token.CaretEq, start)
	}

	var kind token.Kind
	switch lx.cursor.Bump() {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '^':
		kind = token.Caret
	case '#':
		kind = token.Hash
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '=':
		kind = token.Assign
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case '?':
		kind = token.Question
	case '|':
		kind = token.Pipe
	case '&':
		kind = token.Amp
	case '@':
		kind = token.At
	default:
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteByte(tok.Text))
		return tok
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) try2(a, b byte) bool {
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == a && b1 == b {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return true
	}
	return false
}

func (lx *Lexer) try3(a, b, c byte) bool {
	if lx.cursor.Peek() == a && lx.cursor.PeekAt(1) == b && lx.cursor.PeekAt(2) == c {
		lx.cursor.Off += 3
		return true
	}
	return false
}

func quoteByte(s string) string {
	return "'" + s + "'"
}
