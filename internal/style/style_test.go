package style

import (
	"slices"
	"testing"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/token"
)

func TestRequote(t *testing.T) {
	tests := []struct {
		in   string
		qs   config.QuoteStyle
		want string
	}{
		{`'hi'`, config.QuotePreferDouble, `"hi"`},
		{`"hi"`, config.QuotePreferSingle, `'hi'`},
		{`'it\'s'`, config.QuotePreferDouble, `"it's"`},
		{`'say "hi"'`, config.QuotePreferDouble, `'say "hi"'`},
		{`"say \"hi\""`, config.QuotePreferDouble, `'say "hi"'`},
		{`'a"b\'c'`, config.QuotePreferDouble, `"a\"b'c"`},
		{`'a"b\'c'`, config.QuotePreferSingle, `'a"b\'c'`},
		{`'say "hi"'`, config.QuoteDouble, `"say \"hi\""`},
		{`"it's"`, config.QuoteSingle, `'it\'s'`},
		{`"back\\slash"`, config.QuoteSingle, `'back\\slash'`},
		{`"tab\t"`, config.QuotePreferSingle, `'tab\t'`},
		{"`interp {x}`", config.QuoteSingle, "`interp {x}`"},
		{`[[long]]`, config.QuoteSingle, `[[long]]`},
	}
	for _, tt := range tests {
		t.Run(tt.in+"/"+tt.qs.String(), func(t *testing.T) {
			got := Requote(tt.in, tt.qs)
			if got != tt.want {
				t.Fatalf("Requote(%q, %v): want %s, got %s", tt.in, tt.qs, tt.want, got)
			}
			if again := Requote(got, tt.qs); again != got {
				t.Fatalf("Requote not stable: %s -> %s", got, again)
			}
		})
	}
}

func TestEscapeCounts(t *testing.T) {
	d, s := EscapeCounts(`a"b\"c'd\\`)
	if d != 2 || s != 1 {
		t.Fatalf("want 2 doubles and 1 single, got %d and %d", d, s)
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"my_var", []string{"my", "var"}},
		{"myVar", []string{"my", "Var"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"getHTTP", []string{"get", "HTTP"}},
		{"var2X", []string{"var2", "X"}},
		{"snake__case", []string{"snake", "case"}},
		{"x", []string{"x"}},
	}
	for _, tt := range tests {
		if got := SplitWords(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("SplitWords(%q): want %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestApplyCase(t *testing.T) {
	tests := []struct {
		conv config.NamingConvention
		in   string
		want string
	}{
		{config.CaseCamel, "my_var", "myVar"},
		{config.CaseCamel, "MyVar", "myVar"},
		{config.CaseCamel, "MAX_SIZE", "maxSize"},
		{config.CasePascal, "my_var", "MyVar"},
		{config.CasePascal, "HTTPServer", "HttpServer"},
		{config.CaseSnake, "myVar", "my_var"},
		{config.CaseSnake, "HTTPServer", "http_server"},
		{config.CaseSnake, "_private", "_private"},
		{config.CaseCamel, "__index", "__index"},
		{config.CaseCamel, "_my_field_", "_myField_"},
		{config.CaseCamel, "_", "_"},
		{config.CaseCamel, "And", "And"},
		{config.CaseNone, "my_var", "my_var"},
	}
	for _, tt := range tests {
		got := ApplyCase(tt.conv, tt.in)
		if got != tt.want {
			t.Errorf("ApplyCase(%v, %q): want %q, got %q", tt.conv, tt.in, tt.want, got)
		}
		if again := ApplyCase(tt.conv, got); again != got {
			t.Errorf("ApplyCase(%v) not stable: %q -> %q", tt.conv, got, again)
		}
	}
}

func TestApplyRoleKeepsBuiltins(t *testing.T) {
	cfg := config.Default()
	cfg.VariableCasing = config.CasePascal
	cfg.TypeCasing = config.CasePascal
	if got := ApplyRole(cfg, RoleVariable, "require"); got != "require" {
		t.Fatalf("builtin global renamed to %q", got)
	}
	if got := ApplyRole(cfg, RoleType, "number"); got != "number" {
		t.Fatalf("builtin type renamed to %q", got)
	}
	if got := ApplyRole(cfg, RoleType, "my_type"); got != "MyType" {
		t.Fatalf("want MyType, got %q", got)
	}
	if got := ApplyRole(cfg, RoleNone, "my_field"); got != "my_field" {
		t.Fatalf("RoleNone must not rename, got %q", got)
	}
}

func lit(kind token.Kind, text string) ast.Expr {
	return &ast.Literal{Tok: token.Token{Kind: kind, Text: text}}
}

func table(values ...ast.Expr) *ast.TableExpr {
	t := &ast.TableExpr{}
	for _, v := range values {
		t.Fields.Push(&ast.TableField{Kind: ast.FieldPositional, Value: v}, nil)
	}
	return t
}

func TestCompactTable(t *testing.T) {
	call := &ast.CallExpr{
		Fn:   &ast.NameExpr{Tok: token.Token{Kind: token.Ident, Text: "f"}},
		Args: &ast.ParenArgs{},
	}
	literals := table(lit(token.Number, "1"), lit(token.Number, "2"), lit(token.Number, "3"))
	mixed := table(lit(token.Number, "1"), call, lit(token.Number, "3"))
	nested := table(literals, &ast.NameExpr{Tok: token.Token{Kind: token.Ident, Text: "x"}})
	single := table(call)

	tests := []struct {
		name   string
		policy config.CompactTable
		t      *ast.TableExpr
		want   bool
	}{
		{"literals", config.CompactOnlyLiterals, literals, true},
		{"mixed", config.CompactOnlyLiterals, mixed, false},
		{"nested", config.CompactOnlyLiterals, nested, true},
		{"empty never", config.CompactNever, table(), true},
		{"never", config.CompactNever, literals, false},
		{"always", config.CompactAlways, mixed, true},
		{"single", config.CompactSingleElement, single, true},
		{"single many", config.CompactSingleElement, literals, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompactTable(tt.policy, tt.t); got != tt.want {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}
