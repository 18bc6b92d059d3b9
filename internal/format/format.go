package format

import (
	"errors"
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/diag"
)

// ErrErroneousCst is returned for a tree that carries syntax errors. Such a
// tree is never formatted.
var ErrErroneousCst = errors.New("format: the syntax tree contains errors")

// Format renders cst with the default configuration.
func Format(cst *ast.Cst) (string, error) {
	return FormatWithConfig(cst, config.Default())
}

// FormatWithConfig renders cst under cfg. Formatting is total over
// well-formed trees: the only error is ErrErroneousCst.
func FormatWithConfig(cst *ast.Cst, cfg config.Config) (string, error) {
	if cst == nil || cst.HasErrors {
		return "", ErrErroneousCst
	}
	p := newPrinter(cfg)
	out := p.file(cst)
	if nl := cfg.NewlineStyle.Newline(); nl != "\n" {
		out = strings.ReplaceAll(out, "\n", nl)
	}
	return out, nil
}

// Source parses src and formats it. Parse diagnostics are returned in the
// bag; a file with errors yields ErrErroneousCst.
func Source(path string, src []byte, cfg config.Config, maxDiag int) (string, *diag.Bag, error) {
	cst, bag := parseOnce(path, src, maxDiag)
	out, err := FormatWithConfig(cst, cfg)
	return out, bag, err
}

func (p *printer) file(cst *ast.Cst) string {
	out := strings.TrimPrefix(p.blockBody(cst.Block, 0, &cst.EOF), "\n")
	out = strings.TrimRight(out, " \t")
	if out != "" && p.cfg.AddFinalNewline {
		out += "\n"
	}
	return out
}
