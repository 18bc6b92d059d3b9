package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                 Code = 1000
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexUnterminatedComment  Code = 1003
	LexBadNumber            Code = 1004
	LexUnterminatedLongStr  Code = 1005
	LexUnterminatedInterp   Code = 1006
	LexBadLongBracketOpener Code = 1007

	// syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectType        Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBrace     Code = 2006
	SynUnclosedBracket   Code = 2007
	SynExpectEnd         Code = 2008
	SynExpectThen        Code = 2009
	SynExpectDo          Code = 2010
	SynExpectUntil       Code = 2011
	SynExpectAssign      Code = 2012
	SynForBadHeader      Code = 2013
	SynNotCallable       Code = 2014
	SynStatementExpected Code = 2015
	SynTrailingComma     Code = 2016

	// io
	IOReadError  Code = 4001
	IOWriteError Code = 4002

	// config
	CfgInvalidValue Code = 5001
	CfgUnknownKey   Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unknown character",
	LexUnterminatedString:   "Unterminated string literal",
	LexUnterminatedComment:  "Unterminated block comment",
	LexBadNumber:            "Invalid number literal",
	LexUnterminatedLongStr:  "Unterminated long string",
	LexUnterminatedInterp:   "Unterminated interpolated string",
	LexBadLongBracketOpener: "Invalid long bracket opener",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectExpression:     "Expected expression",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectType:           "Expected type",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynUnclosedBrace:        "Unclosed brace",
	SynUnclosedBracket:      "Unclosed bracket",
	SynExpectEnd:            "Expected 'end'",
	SynExpectThen:           "Expected 'then'",
	SynExpectDo:             "Expected 'do'",
	SynExpectUntil:          "Expected 'until'",
	SynExpectAssign:         "Expected '='",
	SynForBadHeader:         "Malformed for loop header",
	SynNotCallable:          "Expression statement is not a call",
	SynStatementExpected:    "Expected statement",
	SynTrailingComma:        "Trailing comma is not allowed here",
	IOReadError:             "I/O read error",
	IOWriteError:            "I/O write error",
	CfgInvalidValue:         "Invalid configuration value",
	CfgUnknownKey:           "Unknown configuration key",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
