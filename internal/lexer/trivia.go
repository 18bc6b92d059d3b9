package lexer

import (
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// collectLeadingTrivia gathers trivia before the next significant token:
//   - ' ', '\t', '\f', '\v' runs -> TriviaSpace
//   - consecutive '\n' -> one TriviaNewline
//   - --[[ ... ]] / --[==[ ... ]==] -> TriviaBlockComment
//   - -- ... up to '\n' -> TriviaLineComment
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		if lx.scanSpaceInto(&lx.hold) {
			continue
		}
		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.hold = append(lx.hold, lx.trivia(token.TriviaNewline, start))
			continue
		}
		if lx.scanCommentInto(&lx.hold) {
			continue
		}
		break
	}
}

// collectTrailingTrivia gathers spaces and comments after a token up to and
// including the first newline.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		if lx.scanSpaceInto(&out) {
			continue
		}
		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			out = append(out, lx.trivia(token.TriviaNewline, start))
			break
		}
		if lx.scanCommentInto(&out) {
			continue
		}
		break
	}
	return out
}

func (lx *Lexer) scanSpaceInto(dst *[]token.Trivia) bool {
	if !isSpace(lx.cursor.Peek()) {
		return false
	}
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	*dst = append(*dst, lx.trivia(token.TriviaSpace, start))
	return true
}

func (lx *Lexer) scanCommentInto(dst *[]token.Trivia) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '-' || b1 != '-' {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	if lx.cursor.Peek() == '[' {
		if level := lx.longBracketLevel(); level >= 0 {
			if !lx.skipLongBracket(level) {
				lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
			}
			*dst = append(*dst, lx.trivia(token.TriviaBlockComment, start))
			return true
		}
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	*dst = append(*dst, lx.trivia(token.TriviaLineComment, start))
	return true
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
