package lexer

import (
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// scanNumber accepts 0x.., 0b.., decimal integers and floats with optional
// fraction and exponent; '_' separators are allowed anywhere after the first digit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := lx.eatWhile(func(b byte) bool { return isHex(b) || b == '_' })
			return lx.finishNumber(start, n > 0)
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := lx.eatWhile(func(b byte) bool { return b == '0' || b == '1' || b == '_' })
			return lx.finishNumber(start, n > 0)
		}
	}

	lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		lx.cursor.Bump()
		lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		n := lx.eatWhile(func(b byte) bool { return isDec(b) || b == '_' })
		return lx.finishNumber(start, n > 0)
	}
	return lx.finishNumber(start, true)
}

func (lx *Lexer) finishNumber(start Mark, ok bool) token.Token {
	// trailing identifier characters glue onto the literal as an error
	bad := !ok
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}
	tok := lx.emit(token.Number, start)
	if bad {
		lx.errLex(diag.LexBadNumber, tok.Span, "malformed number "+tok.Text)
		tok.Kind = token.Invalid
	}
	return tok
}

func (lx *Lexer) eatWhile(pred func(byte) bool) int {
	n := 0
	for !lx.cursor.EOF() && pred(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n
}
