package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number
	// String is a quoted string: '...' or "...".
	String
	// LongString is a long bracket string: [[...]], [==[...]==].
	LongString
	// InterpString is a backtick string; interpolations are kept inside the token.
	InterpString

	KwAnd      // and
	KwBreak    // break
	KwDo       // do
	KwElse     // else
	KwElseif   // elseif
	KwEnd      // end
	KwFalse    // false
	KwFor      // for
	KwFunction // function
	KwIf       // if
	KwIn       // in
	KwLocal    // local
	KwNil      // nil
	KwNot      // not
	KwOr       // or
	KwRepeat   // repeat
	KwReturn   // return
	KwThen     // then
	KwTrue     // true
	KwUntil    // until
	KwWhile    // while

	Plus         // +
	Minus        // -
	Star         // *
	Slash        // /
	SlashSlash   // //
	Percent      // %
	Caret        // ^
	Hash         // #
	EqEq         // ==
	TildeEq      // ~=
	Lt           // <
	LtEq         // <=
	Gt           // >
	GtEq         // >=
	Assign       // =
	PlusEq       // +=
	MinusEq      // -=
	StarEq       // *=
	SlashEq      // /=
	SlashSlashEq // //=
	PercentEq    // %=
	CaretEq      // ^=
	DotDotEq     // ..=
	LParen       // (
	RParen       // )
	LBrace       // {
	RBrace       // }
	LBracket     // [
	RBracket     // ]
	Semicolon    // ;
	Colon        // :
	ColonColon   // ::
	Comma        // ,
	Dot          // .
	DotDot       // ..
	DotDotDot    // ...
	Arrow        // ->
	Question     // ?
	Pipe         // |
	Amp          // &
	At           // @
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Ident:        "Ident",
	Number:       "Number",
	String:       "String",
	LongString:   "LongString",
	InterpString: "InterpString",
	KwAnd:        "KwAnd",
	KwBreak:      "KwBreak",
	KwDo:         "KwDo",
	KwElse:       "KwElse",
	KwElseif:     "KwElseif",
	KwEnd:        "KwEnd",
	KwFalse:      "KwFalse",
	KwFor:        "KwFor",
	KwFunction:   "KwFunction",
	KwIf:         "KwIf",
	KwIn:         "KwIn",
	KwLocal:      "KwLocal",
	KwNil:        "KwNil",
	KwNot:        "KwNot",
	KwOr:         "KwOr",
	KwRepeat:     "KwRepeat",
	KwReturn:     "KwReturn",
	KwThen:       "KwThen",
	KwTrue:       "KwTrue",
	KwUntil:      "KwUntil",
	KwWhile:      "KwWhile",
	Plus:         "Plus",
	Minus:        "Minus",
	Star:         "Star",
	Slash:        "Slash",
	SlashSlash:   "SlashSlash",
	Percent:      "Percent",
	Caret:        "Caret",
	Hash:         "Hash",
	EqEq:         "EqEq",
	TildeEq:      "TildeEq",
	Lt:           "Lt",
	LtEq:         "LtEq",
	Gt:           "Gt",
	GtEq:         "GtEq",
	Assign:       "Assign",
	PlusEq:       "PlusEq",
	MinusEq:      "MinusEq",
	StarEq:       "StarEq",
	SlashEq:      "SlashEq",
	SlashSlashEq: "SlashSlashEq",
	PercentEq:    "PercentEq",
	CaretEq:      "CaretEq",
	DotDotEq:     "DotDotEq",
	LParen:       "LParen",
	RParen:       "RParen",
	LBrace:       "LBrace",
	RBrace:       "RBrace",
	LBracket:     "LBracket",
	RBracket:     "RBracket",
	Semicolon:    "Semicolon",
	Colon:        "Colon",
	ColonColon:   "ColonColon",
	Comma:        "Comma",
	Dot:          "Dot",
	DotDot:       "DotDot",
	DotDotDot:    "DotDotDot",
	Arrow:        "Arrow",
	Question:     "Question",
	Pipe:         "Pipe",
	Amp:          "Amp",
	At:           "At",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsCompoundAssign reports whether k is one of += -= *= /= //= %= ^= ..=.
func (k Kind) IsCompoundAssign() bool {
	return k >= PlusEq && k <= DotDotEq
}
