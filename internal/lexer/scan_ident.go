package lexer

import (
	"luaufmt/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if kw, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = kw
	}
	return tok
}
