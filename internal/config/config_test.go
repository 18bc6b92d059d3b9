package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.ColumnWidth != 100 || cfg.StringWidth != 60 || cfg.CommentsWidth != 80 {
		t.Fatalf("unexpected widths: %+v", cfg)
	}
	if cfg.QuoteStyle != QuotePreferDouble || cfg.CompactTable != CompactOnlyLiterals {
		t.Fatalf("unexpected policies: %+v", cfg)
	}
	if !cfg.AddFinalNewline || !cfg.SortRequires || !cfg.SortServices {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestDecodeOverridesAndKeepsDefaults(t *testing.T) {
	src := `
column_width = 80
quote_style = "single"
compact_table = "single_element"
indent_style = "Tabs"
newline_style = "crlf"
semicolon = "Keep"
variable_casing = "Camel"
function_parenthesis = "remove-when-possible"
sort_services = false
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.ColumnWidth != 80 || cfg.StringWidth != 60 {
		t.Fatalf("widths: %+v", cfg)
	}
	if cfg.QuoteStyle != QuoteSingle || cfg.CompactTable != CompactSingleElement {
		t.Fatalf("enums: %v %v", cfg.QuoteStyle, cfg.CompactTable)
	}
	if cfg.IndentStyle != IndentTabs || cfg.NewlineStyle != NewlineCRLF || cfg.Semicolon != SemicolonKeep {
		t.Fatalf("enums: %v %v %v", cfg.IndentStyle, cfg.NewlineStyle, cfg.Semicolon)
	}
	if cfg.VariableCasing != CaseCamel || cfg.FunctionParenthesis != ParensRemoveWhenPossible {
		t.Fatalf("enums: %v %v", cfg.VariableCasing, cfg.FunctionParenthesis)
	}
	if cfg.SortServices || !cfg.SortRequires {
		t.Fatalf("toggles: %+v", cfg)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`quote_style = "backtick"`, "invalid quote_style"},
		{`colum_width = 3`, "unknown key(s): colum_width"},
		{`column_width = 0`, "column_width must be positive"},
		{`tab_size = 40`, "tab_size must be in 1..16"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.QuoteStyle = QuotePreferSingle
	cfg.TypeCasing = CasePascal
	cfg.NewlineStyle = NewlineCR

	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), `quote_style = "PreferSingle"`) {
		t.Fatalf("encoded form uses unexpected spelling:\n%s", buf.String())
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back != cfg {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", cfg, back)
	}
}

func TestLoadNamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "luaufmt.toml")
	if err := os.WriteFile(path, []byte("semicolon = 1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the file, got %v", err)
	}
}

func TestIndent(t *testing.T) {
	cfg := Default()
	if got := cfg.Indent(2); got != "        " {
		t.Fatalf("spaces: got %q", got)
	}
	cfg.IndentStyle = IndentTabs
	if got := cfg.Indent(2); got != "\t\t" {
		t.Fatalf("tabs: got %q", got)
	}
	if got := cfg.Indent(0); got != "" {
		t.Fatalf("zero depth: got %q", got)
	}
	if NewlineCRLF.Newline() != "\r\n" || NewlineCR.Newline() != "\r" || NewlineLF.Newline() != "\n" {
		t.Fatalf("newline texts wrong")
	}
}
