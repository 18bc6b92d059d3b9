package config

import (
	"fmt"
	"strings"
)

// QuoteStyle selects the delimiter of quoted string literals.
type QuoteStyle uint8

const (
	QuotePreferDouble QuoteStyle = iota
	QuotePreferSingle
	QuoteDouble
	QuoteSingle
)

// CompactTable selects when table constructors and table types stay on one line.
type CompactTable uint8

const (
	CompactOnlyLiterals CompactTable = iota
	CompactAlways
	CompactSingleElement
	CompactNever
)

// IndentStyle selects spaces (tab_size wide) or tabs for indentation.
type IndentStyle uint8

const (
	IndentSpaces IndentStyle = iota
	IndentTabs
)

// NewlineStyle selects the line ending written to the output.
type NewlineStyle uint8

const (
	NewlineLF NewlineStyle = iota
	NewlineCRLF
	NewlineCR
)

// TrailingCommas selects when table fields get a trailing separator.
type TrailingCommas uint8

const (
	TrailingOnlyMultiLine TrailingCommas = iota
	TrailingAlways
	TrailingNever
)

// Semicolon selects the statement terminator policy.
type Semicolon uint8

const (
	SemicolonNever Semicolon = iota
	SemicolonAlways
	SemicolonKeep
)

// NamingConvention is the identifier casing applied to a role.
type NamingConvention uint8

const (
	CaseNone NamingConvention = iota
	CaseCamel
	CasePascal
	CaseSnake
)

// FunctionParenthesis selects when call arguments keep their parentheses.
type FunctionParenthesis uint8

const (
	ParensAlways FunctionParenthesis = iota
	ParensKeep
	ParensRemoveForStrings
	ParensRemoveForTables
	ParensRemoveWhenPossible
)

var (
	quoteStyleNames     = []string{"PreferDouble", "PreferSingle", "Double", "Single"}
	compactTableNames   = []string{"OnlyLiterals", "Always", "SingleElement", "Never"}
	indentStyleNames    = []string{"Spaces", "Tabs"}
	newlineStyleNames   = []string{"LF", "CRLF", "CR"}
	trailingCommaNames  = []string{"OnlyMultiLine", "Always", "Never"}
	semicolonNames      = []string{"Never", "Always", "Keep"}
	namingNames         = []string{"None", "Camel", "Pascal", "Snake"}
	functionParensNames = []string{"Always", "Keep", "RemoveForStrings", "RemoveForTables", "RemoveWhenPossible"}
)

func enumName(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("Unknown(%d)", v)
}

// parseEnum matches text case-insensitively and ignoring '_' and '-'.
func parseEnum(kind string, names []string, text []byte) (uint8, error) {
	norm := func(s string) string {
		s = strings.ToLower(s)
		return strings.NewReplacer("_", "", "-", "").Replace(s)
	}
	want := norm(string(text))
	for i, name := range names {
		if norm(name) == want {
			return uint8(i), nil // #nosec G115 -- enum tables are tiny
		}
	}
	return 0, fmt.Errorf("invalid %s %q (expected one of %s)", kind, string(text), strings.Join(names, ", "))
}

func (v QuoteStyle) String() string { return enumName(quoteStyleNames, uint8(v)) }
func (v QuoteStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *QuoteStyle) UnmarshalText(text []byte) error {
	n, err := parseEnum("quote_style", quoteStyleNames, text)
	*v = QuoteStyle(n)
	return err
}

func (v CompactTable) String() string { return enumName(compactTableNames, uint8(v)) }
func (v CompactTable) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *CompactTable) UnmarshalText(text []byte) error {
	n, err := parseEnum("compact_table", compactTableNames, text)
	*v = CompactTable(n)
	return err
}

func (v IndentStyle) String() string { return enumName(indentStyleNames, uint8(v)) }
func (v IndentStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *IndentStyle) UnmarshalText(text []byte) error {
	n, err := parseEnum("indent_style", indentStyleNames, text)
	*v = IndentStyle(n)
	return err
}

func (v NewlineStyle) String() string { return enumName(newlineStyleNames, uint8(v)) }
func (v NewlineStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *NewlineStyle) UnmarshalText(text []byte) error {
	n, err := parseEnum("newline_style", newlineStyleNames, text)
	*v = NewlineStyle(n)
	return err
}

// Newline returns the line terminator text.
func (v NewlineStyle) Newline() string {
	switch v {
	case NewlineCRLF:
		return "\r\n"
	case NewlineCR:
		return "\r"
	}
	return "\n"
}

func (v TrailingCommas) String() string { return enumName(trailingCommaNames, uint8(v)) }
func (v TrailingCommas) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *TrailingCommas) UnmarshalText(text []byte) error {
	n, err := parseEnum("trailing_commas", trailingCommaNames, text)
	*v = TrailingCommas(n)
	return err
}

func (v Semicolon) String() string { return enumName(semicolonNames, uint8(v)) }
func (v Semicolon) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *Semicolon) UnmarshalText(text []byte) error {
	n, err := parseEnum("semicolon", semicolonNames, text)
	*v = Semicolon(n)
	return err
}

func (v NamingConvention) String() string { return enumName(namingNames, uint8(v)) }
func (v NamingConvention) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *NamingConvention) UnmarshalText(text []byte) error {
	n, err := parseEnum("naming convention", namingNames, text)
	*v = NamingConvention(n)
	return err
}

func (v FunctionParenthesis) String() string { return enumName(functionParensNames, uint8(v)) }
func (v FunctionParenthesis) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *FunctionParenthesis) UnmarshalText(text []byte) error {
	n, err := parseEnum("function_parenthesis", functionParensNames, text)
	*v = FunctionParenthesis(n)
	return err
}
