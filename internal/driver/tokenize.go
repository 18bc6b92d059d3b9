package driver

import (
	"fmt"
	"io"
	"os"

	"luaufmt/internal/diag"
	"luaufmt/internal/lexer"
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// loadSource reads path into a fresh file set. StdinPath reads standard
// input instead.
func loadSource(path string, stdin io.Reader) (*source.FileSet, *source.File, error) {
	fs := source.NewFileSet()
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return fs, fs.Get(fs.AddVirtual("<stdin>", data)), nil
	}
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	return fs, fs.Get(id), nil
}

// Tokenize lexes one file, collecting lexical diagnostics.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs, file, err := loadSource(path, nil)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}),
		Bag:     bag,
	}, nil
}
