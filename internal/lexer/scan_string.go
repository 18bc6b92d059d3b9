package lexer

import (
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// scanString scans '...' or "...". A backslash escapes the following byte,
// including a newline, and `\z` also skips the whitespace after it. An
// unescaped newline terminates the literal with an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
			return tok
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if lx.cursor.Bump() == 'z' {
				// `\z` skips the following whitespace, newlines included
				for isSpace(lx.cursor.Peek()) || lx.cursor.Peek() == '\n' || lx.cursor.Peek() == '\r' {
					lx.cursor.Bump()
				}
			}
			continue
		}
		if b == quote {
			return lx.emit(token.String, start)
		}
	}
}

// longBracketLevel reports the level of a long bracket opener `[==[` at the
// cursor, or -1 if the cursor is not on one.
func (lx *Lexer) longBracketLevel() int {
	if lx.cursor.Peek() != '[' {
		return -1
	}
	var n uint32 = 1
	for lx.cursor.PeekAt(n) == '=' {
		n++
	}
	if lx.cursor.PeekAt(n) != '[' {
		return -1
	}
	return int(n - 1)
}

// skipLongBracket consumes `[==[ ... ]==]`; it reports false when the closer is missing.
func (lx *Lexer) skipLongBracket(level int) bool {
	for i := 0; i < level+2; i++ {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != ']' {
			continue
		}
		eq := 0
		for lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			eq++
		}
		if eq == level && lx.cursor.Peek() == ']' {
			lx.cursor.Bump()
			return true
		}
	}
	return false
}

func (lx *Lexer) scanLongString() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipLongBracket(lx.longBracketLevel()) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedLongStr, tok.Span, "unterminated long string")
		return tok
	}
	return lx.emit(token.LongString, start)
}

// scanInterpString scans a backtick string as a single token. Interpolated
// expressions between braces are skipped with brace, string and nested
// backtick awareness.
func (lx *Lexer) scanInterpString() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipInterp() {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnterminatedInterp, tok.Span, "unterminated interpolated string")
		return tok
	}
	return lx.emit(token.InterpString, start)
}

func (lx *Lexer) skipInterp() bool {
	lx.cursor.Bump() // '`'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '`':
			return true
		case '\n':
			return false
		case '{':
			if !lx.skipInterpExpr() {
				return false
			}
		}
	}
	return false
}

func (lx *Lexer) skipInterpExpr() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case '{':
			depth++
			lx.cursor.Bump()
		case '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if lx.scanString().Kind == token.Invalid {
				return false
			}
		case '`':
			if !lx.skipInterp() {
				return false
			}
		case '[':
			if level := lx.longBracketLevel(); level >= 0 {
				if !lx.skipLongBracket(level) {
					return false
				}
			} else {
				lx.cursor.Bump()
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
