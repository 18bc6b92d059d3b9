package testkit_test

import (
	"testing"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/diag"
	"luaufmt/internal/format"
	"luaufmt/internal/parser"
	"luaufmt/internal/source"
	"luaufmt/internal/testkit"
)

const sample = `--!strict
-- a long comment that the formatter will have to wrap because it is wide
local   x = { 1, 2 } --[[ inline ]] -- trailing

--[==[
  block
]==]
function   f( a , b ) return a..b end
-- bye
`

func parse(t *testing.T, src string) (*ast.Cst, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.luau", []byte(src)))
	bag := diag.NewBag(100)
	cst := parser.ParseFile(f, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if cst.HasErrors {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return cst, f
}

func formatter(cfg config.Config) testkit.Formatter {
	return func(src []byte) (string, error) {
		out, _, err := format.Source("test.luau", src, cfg, 100)
		return out, err
	}
}

func TestSpanInvariants(t *testing.T) {
	cst, f := parse(t, sample)
	if err := testkit.CheckSpanInvariants(cst, f); err != nil {
		t.Fatal(err)
	}
}

func TestFormatterInvariants(t *testing.T) {
	cfg := config.Default()
	cfg.CommentsWidth = 40
	if err := testkit.CheckIdempotent(formatter(cfg), []byte(sample)); err != nil {
		t.Fatal(err)
	}

	out, err := formatter(cfg)([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	before, _ := parse(t, sample)
	after, _ := parse(t, out)
	if err := testkit.CheckCommentsPreserved(before, after); err != nil {
		t.Fatalf("%v\n%s", err, out)
	}
}

func TestCommentWordsStripDelimiters(t *testing.T) {
	cst, _ := parse(t, "--[=[ a b ]=]\n-- c\nlocal x = 1 --- d\n")
	got := testkit.CommentWords(cst)
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}
