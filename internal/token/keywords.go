package token

var keywords = map[string]Kind{
	"and":      KwAnd,
	"break":    KwBreak,
	"do":       KwDo,
	"else":     KwElse,
	"elseif":   KwElseif,
	"end":      KwEnd,
	"false":    KwFalse,
	"for":      KwFor,
	"function": KwFunction,
	"if":       KwIf,
	"in":       KwIn,
	"local":    KwLocal,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"repeat":   KwRepeat,
	"return":   KwReturn,
	"then":     KwThen,
	"true":     KwTrue,
	"until":    KwUntil,
	"while":    KwWhile,
}

// LookupKeyword returns the keyword kind for ident, if it is reserved.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsReserved reports whether s cannot be used as an identifier.
func IsReserved(s string) bool {
	_, ok := keywords[s]
	return ok
}
