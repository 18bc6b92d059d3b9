package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Span     source.Span `json:"span"`
	Leading  []string    `json:"leading,omitempty"`
	Trailing []string    `json:"trailing,omitempty"`
}

func triviaKinds(tv []token.Trivia) []string {
	if len(tv) == 0 {
		return nil
	}
	out := make([]string, len(tv))
	for i, t := range tv {
		out[i] = t.Kind.String()
	}
	return out
}

// FormatTokensPretty prints one token per line with its position and trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if leading := triviaKinds(tok.Leading); len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		if trailing := triviaKinds(tok.Trailing); len(trailing) > 0 {
			fmt.Fprintf(w, " (trailing: %s)", strings.Join(trailing, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Span:     tok.Span,
			Leading:  triviaKinds(tok.Leading),
			Trailing: triviaKinds(tok.Trailing),
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
