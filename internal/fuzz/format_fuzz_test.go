package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"luaufmt/internal/config"
	"luaufmt/internal/diag"
	"luaufmt/internal/format"
	"luaufmt/internal/parser"
	"luaufmt/internal/source"
	"luaufmt/internal/testkit"
)

// parseTimeout bounds a single parse; longer means the parser is looping.
const parseTimeout = 5 * time.Second

func FuzzParserSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.luau", input))
			bag := diag.NewBag(128)
			cst := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 128})
			if cst.HasErrors {
				// recovery inserts placeholder tokens that share the next token's span
				done <- nil
				return
			}
			done <- testkit.CheckSpanInvariants(cst, file)
		}()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("span invariants: %v", err)
			}
		case <-ctx.Done():
			t.Fatalf("parser timeout after %v on input of %d bytes", parseTimeout, len(input))
		}
	})
}

// FuzzFormatterRoundTrip formats every input that parses cleanly and
// requires the result to re-parse into the same statements and to be a
// fixed point.
func FuzzFormatterRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	cfg := config.Default()
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		_, _, err := format.Source("fuzz.luau", input, cfg, 64)
		if errors.Is(err, format.ErrErroneousCst) {
			return
		}
		if err != nil {
			t.Fatalf("format: %v", err)
		}
		if ok, msg := format.CheckRoundTrip("fuzz.luau", input, cfg, 64); !ok {
			t.Fatalf("round trip failed: %s\ninput: %q", msg, input)
		}
	})
}
