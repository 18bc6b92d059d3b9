package lexer

import (
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead
	hold   []token.Trivia // pending leading trivia
	done   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with Leading and Trailing trivia
// attached. The final EOF token carries the trivia that ends the file; after
// it Next keeps returning bare EOF tokens.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.done {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		tok := token.Token{Kind: token.EOF, Span: lx.emptySpan(), Leading: lx.hold}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '.' && isDec(lx.cursor.PeekAt(1)):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	case ch == '`':
		tok = lx.scanInterpString()
	case ch == '[' && lx.longBracketLevel() >= 0:
		tok = lx.scanLongString()
	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	tok.Trailing = lx.collectTrailingTrivia()
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokenize lexes the whole file and returns every token including the final EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}
