package fuzztests

import (
	"strings"
	"testing"

	"luaufmt/internal/diag"
	"luaufmt/internal/lexer"
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

// FuzzLexerLossless checks that the token stream with its trivia spells out
// the normalised input exactly.
func FuzzLexerLossless(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.luau", input))
		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
			t.Fatalf("token stream does not end with EOF")
		}

		var sb strings.Builder
		for _, tok := range tokens {
			for _, tv := range tok.Leading {
				sb.WriteString(tv.Text)
			}
			sb.WriteString(tok.Text)
			for _, tv := range tok.Trailing {
				sb.WriteString(tv.Text)
			}
		}
		if sb.String() != string(file.Content) {
			t.Fatalf("tokens do not reassemble the input\nwant %q\ngot  %q", file.Content, sb.String())
		}
	})
}
