package parser

import "luaufmt/internal/token"

// Binary operator priorities. Right-associative operators bind tighter on
// the left than on the right.
const (
	precOr         = 1 // or
	precAnd        = 2 // and
	precComparison = 3 // < > <= >= ~= ==
	precConcat     = 4 // .. (right)
	precAdditive   = 5 // + -
	precMultiply   = 6 // * / // %
	precUnary      = 7 // not # -
	precPow        = 8 // ^ (right)
)

// binaryPrec returns the left and right priority of a binary operator and
// whether kind is one.
func binaryPrec(kind token.Kind) (left, right int, ok bool) {
	switch kind {
	case token.KwOr:
		return precOr, precOr, true
	case token.KwAnd:
		return precAnd, precAnd, true
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.TildeEq, token.EqEq:
		return precComparison, precComparison, true
	case token.DotDot:
		return precConcat, precConcat - 1, true
	case token.Plus, token.Minus:
		return precAdditive, precAdditive, true
	case token.Star, token.Slash, token.SlashSlash, token.Percent:
		return precMultiply, precMultiply, true
	case token.Caret:
		return precPow, precPow - 1, true
	}
	return 0, 0, false
}

// BinaryPrecedence exposes the left priority of a binary operator for the
// formatter, which must not regroup chains of different precedence.
func BinaryPrecedence(kind token.Kind) int {
	left, _, _ := binaryPrec(kind)
	return left
}

// RightAssociative reports whether a chain of kind nests to the right, as
// `..` and `^` do.
func RightAssociative(kind token.Kind) bool {
	left, right, ok := binaryPrec(kind)
	return ok && right < left
}

func isUnaryOp(kind token.Kind) bool {
	return kind == token.KwNot || kind == token.Minus || kind == token.Hash
}
