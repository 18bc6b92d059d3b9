package format

import (
	"fmt"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/diag"
	"luaufmt/internal/parser"
	"luaufmt/internal/source"
)

// CheckRoundTrip formats src, re-parses the output and verifies that the
// sequence of top-level statement kinds is unchanged and that formatting the
// output again is a no-op.
func CheckRoundTrip(path string, src []byte, cfg config.Config, maxDiag int) (ok bool, msg string) {
	orig, bag := parseOnce(path, src, maxDiag)
	if orig.HasErrors {
		return false, "fmt-check: initial parse failed" + bagSummary(bag)
	}
	first, err := FormatWithConfig(orig, cfg)
	if err != nil {
		return false, "fmt-check: " + err.Error()
	}

	again, bag := parseOnce(path, []byte(first), maxDiag)
	if again.HasErrors {
		return false, "fmt-check: reparse failed" + bagSummary(bag)
	}
	if a, b := len(orig.Block.Stmts), len(again.Block.Stmts); a != b {
		return false, fmt.Sprintf("fmt-check: statement count changed: %d -> %d", a, b)
	}
	for i, e := range orig.Block.Stmts {
		before, after := stmtKind(e.Stmt), stmtKind(again.Block.Stmts[i].Stmt)
		if before != after {
			return false, fmt.Sprintf("fmt-check: statement %d changed kind: %s -> %s", i+1, before, after)
		}
	}

	second, err := FormatWithConfig(again, cfg)
	if err != nil {
		return false, "fmt-check: " + err.Error()
	}
	if first != second {
		return false, "fmt-check: formatting is not idempotent"
	}
	return true, "fmt-check: OK"
}

func parseOnce(path string, src []byte, maxDiag int) (*ast.Cst, *diag.Bag) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(path, src))
	bag := diag.NewBag(maxDiag)
	return parser.ParseFile(f, parser.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func stmtKind(s ast.Stmt) string {
	return fmt.Sprintf("%T", s)
}

func bagSummary(bag *diag.Bag) string {
	if bag == nil || bag.Len() == 0 {
		return ""
	}
	d := bag.Items()[0]
	return fmt.Sprintf(" (%s: %s)", d.Code.ID(), d.Message)
}
