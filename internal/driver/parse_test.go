package driver

import (
	"path/filepath"
	"strings"
	"testing"

	"luaufmt/internal/token"
)

func TestParseReportsErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.luau")
	bad := filepath.Join(dir, "bad.luau")
	writeTestFile(t, good, "local x = 1\n")
	writeTestFile(t, bad, "local = 1\n")

	res, err := Parse(good, 16)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Cst.HasErrors || res.Bag.Len() != 0 || len(res.Cst.Block.Stmts) != 1 {
		t.Fatalf("unexpected result for valid source: %+v", res.Bag.Items())
	}

	res, err = Parse(bad, 16)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.Cst.HasErrors || !res.Bag.HasErrors() {
		t.Fatal("expected syntax errors")
	}
	if !strings.HasPrefix(res.Bag.Items()[0].Code.ID(), "SYN") {
		t.Fatalf("unexpected code %s", res.Bag.Items()[0].Code.ID())
	}

	if _, err := Parse(filepath.Join(dir, "missing.luau"), 16); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadSourceStdin(t *testing.T) {
	fs, file, err := loadSource(StdinPath, strings.NewReader("return 1\r\n"))
	if err != nil {
		t.Fatalf("loadSource: %v", err)
	}
	if string(file.Content) != "return 1\n" {
		t.Fatalf("stdin content not normalised: %q", file.Content)
	}
	if fs.Get(file.ID).Path != "<stdin>" {
		t.Fatalf("unexpected path %q", file.Path)
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.luau")
	writeTestFile(t, path, "local s = 'x' -- c\n")
	res, err := Tokenize(path, 16)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.EOF {
		t.Fatalf("want EOF last, got %s", last.Kind)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
}
