package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"luaufmt/internal/diag"
	"luaufmt/internal/lexer"
	"luaufmt/internal/parser"
	"luaufmt/internal/source"
)

func newFile(t *testing.T, src string) (*source.FileSet, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.Get(fs.AddVirtual("test.luau", []byte(src)))
}

func TestPrettyUnderlinesSpan(t *testing.T) {
	fs, f := newFile(t, "local a = 1\nlocal bad = $$\n")
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: f.ID, Start: 24, End: 26}, "unexpected character"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	got := buf.String()

	want := "test.luau:2:13: ERROR LEX1001: unexpected character\n" +
		"1 | local a = 1\n" +
		"2 | local bad = $$\n" +
		"  |             ^~\n"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs, f := newFile(t, "do\nlocal x = 1\n")
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SynExpectEnd, source.Span{File: f.ID, Start: 15, End: 15}, "expected 'end'").
		WithNote(source.Span{File: f.ID, Start: 0, End: 2}, "block opened here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	got := buf.String()
	if !strings.Contains(got, "test.luau:1:1: note: block opened here") {
		t.Fatalf("note header missing:\n%s", got)
	}
	if !strings.Contains(got, "  | ^~\n") {
		t.Fatalf("note underline missing:\n%s", got)
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestJSONDiagnostics(t *testing.T) {
	fs, f := newFile(t, "local x = \"open\n")
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: f.ID, Start: 10, End: 15}, "unterminated string"))
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: f.ID, Start: 16, End: 16}, "expected expression"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, Max: 1}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %+v", out)
	}
	got := out.Diagnostics[0]
	if got.Code != "LEX1002" || got.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %+v", got)
	}
	if got.Location.StartLine != 1 || got.Location.StartCol != 11 {
		t.Fatalf("unexpected location %+v", got.Location)
	}
}

func TestTokensIncludeTrivia(t *testing.T) {
	fs, f := newFile(t, "-- hi\nlocal x = 1 -- one\n")
	tokens := lexer.Tokenize(f, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.Contains(lines[0], "(leading: LineComment, Newline)") {
		t.Fatalf("leading trivia missing: %q", lines[0])
	}
	if !strings.Contains(buf.String(), "(trailing: Space, LineComment, Newline)") {
		t.Fatalf("trailing trivia missing:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("json: %v", err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(tokens) || out[len(out)-1].Kind != "EOF" {
		t.Fatalf("unexpected token dump: %+v", out)
	}
}

func TestCstOutline(t *testing.T) {
	src := "local x = 1\nif x then\n\tprint(x)\nelse\n\treturn\nend\n"
	fs, f := newFile(t, src)
	cst := parser.ParseFile(f, parser.Options{})

	var buf bytes.Buffer
	if err := FormatCstPretty(&buf, cst, fs); err != nil {
		t.Fatalf("pretty: %v", err)
	}
	want := "File (2 statements)\n" +
		"├─ LocalAssign 1:1-1:12 \"local x = 1\"\n" +
		"└─ IfStmt 2:1-6:4 \"if x then ...\"\n" +
		"   ├─ then\n" +
		"   │  └─ CallStmt 3:2-3:10 \"print(x)\"\n" +
		"   └─ else\n" +
		"      └─ ReturnStmt 5:2-5:8 \"return\"\n"
	if buf.String() != want {
		t.Fatalf("unexpected outline:\n%s\nwant:\n%s", buf.String(), want)
	}

	buf.Reset()
	if err := FormatCstJSON(&buf, cst, fs); err != nil {
		t.Fatalf("json: %v", err)
	}
	var nodes []CstNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &nodes); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nodes) != 2 || len(nodes[1].Children) != 2 {
		t.Fatalf("unexpected outline json: %+v", nodes)
	}
}
