// Package config holds the Style Configuration record consumed by the
// formatter and its TOML representation.
//
// A Config is immutable once loaded: the formatter receives it by value and
// never writes to it, so one Config may be shared by concurrent format calls.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the Style Configuration record.
type Config struct {
	// ColumnWidth bounds the width of a node's compact rendering, measured
	// from the last newline with indentation excluded.
	ColumnWidth int `toml:"column_width"`
	// StringWidth bounds quoted string literals; longer ones are split with `\z`.
	StringWidth int `toml:"string_width"`
	// CommentsWidth bounds comment lines; longer comments are word-wrapped.
	CommentsWidth int `toml:"comments_width"`

	QuoteStyle   QuoteStyle   `toml:"quote_style"`
	CompactTable CompactTable `toml:"compact_table"`

	IndentStyle IndentStyle `toml:"indent_style"`
	TabSize     int         `toml:"tab_size"`

	NewlineStyle   NewlineStyle   `toml:"newline_style"`
	TrailingCommas TrailingCommas `toml:"trailing_commas"`

	// KeepStatementsSpacing disables collapsing blank-line runs to one.
	KeepStatementsSpacing bool      `toml:"keep_statements_spacing"`
	Semicolon             Semicolon `toml:"semicolon"`
	AddFinalNewline       bool      `toml:"add_final_newline"`

	VariableCasing NamingConvention `toml:"variable_casing"`
	MethodCasing   NamingConvention `toml:"method_casing"`
	TypeCasing     NamingConvention `toml:"type_casing"`

	SortRequires bool `toml:"sort_requires"`
	SortServices bool `toml:"sort_services"`

	FunctionParenthesis FunctionParenthesis `toml:"function_parenthesis"`
}

// Default returns the default Style Configuration.
func Default() Config {
	return Config{
		ColumnWidth:     100,
		StringWidth:     60,
		CommentsWidth:   80,
		QuoteStyle:      QuotePreferDouble,
		CompactTable:    CompactOnlyLiterals,
		IndentStyle:     IndentSpaces,
		TabSize:         4,
		NewlineStyle:    NewlineLF,
		TrailingCommas:  TrailingOnlyMultiLine,
		Semicolon:       SemicolonNever,
		AddFinalNewline: true,
		VariableCasing:  CaseNone,
		MethodCasing:    CaseNone,
		TypeCasing:      CaseNone,
		SortRequires:    true,
		SortServices:    true,

		FunctionParenthesis: ParensAlways,
	}
}

// Indent returns the indentation text for the given depth.
func (c Config) Indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	if c.IndentStyle == IndentTabs {
		return strings.Repeat("\t", depth)
	}
	return strings.Repeat(" ", depth*c.TabSize)
}

// Validate checks numeric fields.
func (c Config) Validate() error {
	var errs []error
	if c.ColumnWidth <= 0 {
		errs = append(errs, fmt.Errorf("column_width must be positive, got %d", c.ColumnWidth))
	}
	if c.StringWidth <= 0 {
		errs = append(errs, fmt.Errorf("string_width must be positive, got %d", c.StringWidth))
	}
	if c.CommentsWidth <= 0 {
		errs = append(errs, fmt.Errorf("comments_width must be positive, got %d", c.CommentsWidth))
	}
	if c.TabSize <= 0 || c.TabSize > 16 {
		errs = append(errs, fmt.Errorf("tab_size must be in 1..16, got %d", c.TabSize))
	}
	return errors.Join(errs...)
}

// Decode parses TOML text on top of the defaults. Keys missing from the
// document keep their default values; unknown keys are an error.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	meta, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown key(s): %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and decodes the config file at path.
func Load(path string) (Config, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(cfg)
}
