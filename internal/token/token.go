package token

import (
	"luaufmt/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind     Kind
	Span     source.Span
	Text     string
	Leading  []Trivia
	Trailing []Trivia
}

// IsLiteral reports whether the token is a nil, boolean, number, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case KwNil, KwTrue, KwFalse, Number, String, LongString, InterpString:
		return true
	default:
		return false
	}
}

// IsString reports whether the token is any kind of string literal.
func (t Token) IsString() bool {
	return t.Kind == String || t.Kind == LongString || t.Kind == InterpString
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwAnd && t.Kind <= KwWhile
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsIdentText reports whether the token is the identifier s. It is used for
// contextual keywords such as `type` and `continue`.
func (t Token) IsIdentText(s string) bool { return t.Kind == Ident && t.Text == s }

// HasComments reports whether the token carries any comment trivia.
func (t Token) HasComments() bool {
	return HasComments(t.Leading) || HasComments(t.Trailing)
}

// Synthetic builds a token that does not originate from source, for example a
// semicolon or parenthesis inserted by the formatter.
func Synthetic(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}
