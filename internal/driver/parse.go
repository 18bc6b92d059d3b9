package driver

import (
	"fortio.org/safecast"

	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/parser"
	"luaufmt/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Cst     *ast.Cst
	Bag     *diag.Bag
}

// Parse builds the syntax tree of one file. Parse errors end up in the bag
// and in Cst.HasErrors; only I/O failures are returned as errors.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs, file, err := loadSource(path, nil)
	if err != nil {
		return nil, err
	}
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	cst := parser.ParseFile(file, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	return &ParseResult{
		FileSet: fs,
		File:    file,
		Cst:     cst,
		Bag:     bag,
	}, nil
}
