package parser

import (
	"testing"

	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

func TestRoundTripTokens(t *testing.T) {
	sources := []string{
		"local x = 1\n",
		"-- header\nlocal a, b: number = f(1, 2), g { 1; 2 }\n\n\nreturn a\n",
		"function M.a.b:c<T>(x: T, ...: number): (T, ...number)\n\treturn x -- ok\nend\n",
		"export type Foo<T, U... = ...string> = { read x: T, [string]: (number) -> () } | nil\n",
		"if a then elseif b then else end\nwhile true do break end\nrepeat continue until x\n",
		"for i = 1, 10, 2 do end for k, v in pairs(t) do end\n",
		"local s = `a {b}` .. [[long]] :: string\nx += 1; y //= 2\n",
		"local v = if a then b elseif c then d else e\n--[[ tail ]]",
		"@native local function f() end\ntype function g(t) return t end\n",
	}
	for _, src := range sources {
		cst := mustParse(t, src)
		if got := reassemble(cst); got != src {
			t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", src, got)
		}
	}
}

func TestStatementKinds(t *testing.T) {
	cst := mustParse(t, `local x = 1
y = 2
z += 3
f()
do end
while c do end
repeat until c
if c then end
for i = 1, 2 do end
for k in t do end
function a.b() end
local function g() end
type T = number
export type function tf() end
continue
break
return
`)
	want := []string{
		"*ast.LocalAssign", "*ast.Assign", "*ast.CompoundAssign", "*ast.CallStmt",
		"*ast.DoStmt", "*ast.WhileStmt", "*ast.RepeatStmt", "*ast.IfStmt",
		"*ast.NumericFor", "*ast.GenericFor", "*ast.FunctionDecl", "*ast.LocalFunction",
		"*ast.TypeDecl", "*ast.TypeFunction", "*ast.ContinueStmt", "*ast.BreakStmt",
		"*ast.ReturnStmt",
	}
	if len(cst.Block.Stmts) != len(want) {
		t.Fatalf("want %d statements, got %d", len(want), len(cst.Block.Stmts))
	}
	for i, e := range cst.Block.Stmts {
		if got := typeName(e.Stmt); got != want[i] {
			t.Fatalf("statement %d: want %s, got %s", i, want[i], got)
		}
	}
}

func TestPrecedence(t *testing.T) {
	cst := mustParse(t, "x = a or b and c == d .. e .. f + g * -h ^ i")
	assign := cst.Block.Stmts[0].Stmt.(*ast.Assign)
	or := assign.Values.Items[0].Node.(*ast.BinaryExpr)
	if or.Op.Kind != token.KwOr {
		t.Fatalf("root should be 'or', got %q", or.Op.Text)
	}
	and := or.Right.(*ast.BinaryExpr)
	if and.Op.Kind != token.KwAnd {
		t.Fatalf("want 'and', got %q", and.Op.Text)
	}
	eq := and.Right.(*ast.BinaryExpr)
	if eq.Op.Kind != token.EqEq {
		t.Fatalf("want '==', got %q", eq.Op.Text)
	}
	concat := eq.Right.(*ast.BinaryExpr)
	if concat.Op.Kind != token.DotDot {
		t.Fatalf("want '..', got %q", concat.Op.Text)
	}
	// right associative: d .. (e .. (f + ...))
	inner := concat.Right.(*ast.BinaryExpr)
	if inner.Op.Kind != token.DotDot {
		t.Fatalf("concat should be right associative, got %q", inner.Op.Text)
	}
	plus := inner.Right.(*ast.BinaryExpr)
	mul := plus.Right.(*ast.BinaryExpr)
	neg := mul.Right.(*ast.UnaryExpr)
	if _, ok := neg.Operand.(*ast.BinaryExpr); !ok {
		t.Fatalf("'-h ^ i' should parse as -(h ^ i)")
	}
}

func TestCallForms(t *testing.T) {
	cst := mustParse(t, "a.b:c(1)\nf 'x'\ng { y = 1 }\n")
	first := cst.Block.Stmts[0].Stmt.(*ast.CallStmt).Call
	if first.Method == nil || first.Method.Text != "c" {
		t.Fatalf("method call not recognised")
	}
	if _, ok := cst.Block.Stmts[1].Stmt.(*ast.CallStmt).Call.Args.(*ast.StringArgs); !ok {
		t.Fatalf("string call args not recognised")
	}
	if _, ok := cst.Block.Stmts[2].Stmt.(*ast.CallStmt).Call.Args.(*ast.TableArgs); !ok {
		t.Fatalf("table call args not recognised")
	}
}

func TestTypeForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"type A = number", "*ast.NamedType"},
		{"type A = number?", "*ast.OptionalType"},
		{"type A = | 'a' | 'b'", "*ast.UnionType"},
		{"type A = B & C", "*ast.IntersectionType"},
		{"type A = (number)", "*ast.ParenType"},
		{"type A = (a: number, ...string) -> ...number", "*ast.FunctionType"},
		{"type A = <T>(T) -> T", "*ast.FunctionType"},
		{"type A = { number }", "*ast.TableType"},
		{"type A = typeof(x)", "*ast.TypeofType"},
		{"type A = M.B<C, (D, E)>", "*ast.NamedType"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			cst := mustParse(t, tt.src)
			decl := cst.Block.Stmts[0].Stmt.(*ast.TypeDecl)
			if got := typeName(decl.Value); got != tt.want {
				t.Fatalf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"if x then", diag.SynExpectEnd},
		{"local = 1", diag.SynExpectIdentifier},
		{"x", diag.SynNotCallable},
		{"f(a,)", diag.SynExpectExpression},
		{"function f(a,) end", diag.SynTrailingComma},
		{"end", diag.SynUnexpectedToken},
		{"local t = {1, 2", diag.SynUnclosedBrace},
		{"for i do end", diag.SynForBadHeader},
		{"x = 'unterminated", diag.LexUnterminatedString},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			cst, bag := parseSource(t, tt.src)
			if !cst.HasErrors {
				t.Fatalf("expected errors")
			}
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("want %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestErrorRecoveryKeepsTokens(t *testing.T) {
	src := "local a = 1\n$ ) local b = 2\n"
	cst, _ := parseSource(t, src)
	if !cst.HasErrors {
		t.Fatalf("expected errors")
	}
	if got := reassemble(cst); got != src {
		t.Fatalf("error recovery lost tokens:\nwant %q\ngot  %q", src, got)
	}
}
