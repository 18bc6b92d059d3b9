package parser

import (
	"fmt"
	"strings"
	"testing"

	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

func parseSource(t *testing.T, src string) (*ast.Cst, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.luau", []byte(src)))
	bag := diag.NewBag(100)
	cst := ParseFile(f, Options{Reporter: diag.BagReporter{Bag: bag}})
	return cst, bag
}

func mustParse(t *testing.T, src string) *ast.Cst {
	t.Helper()
	cst, bag := parseSource(t, src)
	if cst.HasErrors {
		t.Fatalf("unexpected parse errors for %q: %s", src, diagnosticsSummary(bag))
	}
	return cst
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// reassemble concatenates every token with its trivia.
func reassemble(cst *ast.Cst) string {
	var sb strings.Builder
	ast.EachBlockToken(cst.Block, func(tok *token.Token) bool {
		writeToken(&sb, tok)
		return true
	})
	writeToken(&sb, &cst.EOF)
	return sb.String()
}

func writeToken(sb *strings.Builder, tok *token.Token) {
	for _, tv := range tok.Leading {
		sb.WriteString(tv.Text)
	}
	sb.WriteString(tok.Text)
	for _, tv := range tok.Trailing {
		sb.WriteString(tv.Text)
	}
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
