package testkit

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"luaufmt/internal/ast"
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every token span belongs to sf and lies within its content
// 2) token spans are non-overlapping and appear in source order
// 3) every trivia span lies between the previous token and its own token
func CheckSpanInvariants(cst *ast.Cst, sf *source.File) error {
	if cst == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var (
		prev   uint32
		failed error
	)
	check := func(tok *token.Token) bool {
		if tok.Span.File != sf.ID {
			failed = fmt.Errorf("token %q span points to different file id: got=%d want=%d", tok.Text, tok.Span.File, sf.ID)
			return false
		}
		if tok.Span.End > lenContent || tok.Span.Start > tok.Span.End {
			failed = fmt.Errorf("token %q span %v is outside content of %d bytes", tok.Text, tok.Span, lenContent)
			return false
		}
		for _, tv := range tok.Leading {
			if tv.Span.Start < prev || tv.Span.End > tok.Span.Start {
				failed = fmt.Errorf("leading trivia %q at %v is out of order", tv.Text, tv.Span)
				return false
			}
			prev = tv.Span.End
		}
		if tok.Span.Start < prev {
			failed = fmt.Errorf("token %q at %v overlaps the previous token", tok.Text, tok.Span)
			return false
		}
		prev = tok.Span.End
		for _, tv := range tok.Trailing {
			if tv.Span.Start < prev {
				failed = fmt.Errorf("trailing trivia %q at %v is out of order", tv.Text, tv.Span)
				return false
			}
			prev = tv.Span.End
		}
		return true
	}
	ast.EachBlockToken(cst.Block, check)
	if failed == nil {
		check(&cst.EOF)
	}
	return failed
}

// Formatter is the shape of the formatting entry point under test.
type Formatter func(src []byte) (string, error)

// CheckIdempotent formats src twice and reports the first differing line.
func CheckIdempotent(format Formatter, src []byte) error {
	first, err := format(src)
	if err != nil {
		return fmt.Errorf("first pass: %w", err)
	}
	second, err := format([]byte(first))
	if err != nil {
		return fmt.Errorf("second pass: %w\n%s", err, first)
	}
	if first == second {
		return nil
	}
	a, b := strings.Split(first, "\n"), strings.Split(second, "\n")
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return fmt.Errorf("not idempotent at line %d:\n  first:  %q\n  second: %q", i+1, a[i], b[i])
		}
	}
	return fmt.Errorf("not idempotent: %d lines vs %d lines", len(a), len(b))
}

// CommentWords returns the words of every comment in the tree, in source
// order and without comment delimiters. Wrapping a comment changes its line
// structure but not its words.
func CommentWords(cst *ast.Cst) []string {
	var words []string
	collect := func(list []token.Trivia) {
		for _, tv := range list {
			if tv.IsComment() {
				words = append(words, strings.Fields(stripDelims(tv.Text))...)
			}
		}
	}
	visit := func(tok *token.Token) bool {
		collect(tok.Leading)
		collect(tok.Trailing)
		return true
	}
	ast.EachBlockToken(cst.Block, visit)
	visit(&cst.EOF)
	return words
}

// CheckCommentsPreserved reports whether after carries the same comment words
// as before.
func CheckCommentsPreserved(before, after *ast.Cst) error {
	a, b := CommentWords(before), CommentWords(after)
	if slices.Equal(a, b) {
		return nil
	}
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return fmt.Errorf("comment word %d changed: %q -> %q", i+1, a[i], b[i])
		}
	}
	return fmt.Errorf("comment word count changed: %d -> %d", len(a), len(b))
}

func stripDelims(text string) string {
	body := strings.TrimLeft(text, "-")
	if strings.HasPrefix(body, "[") {
		level := strings.IndexByte(body[1:], '[')
		if level >= 0 && strings.Trim(body[1:level+1], "=") == "" {
			closing := "]" + strings.Repeat("=", level) + "]"
			body = strings.TrimSuffix(body[level+2:], closing)
		}
	}
	return body
}
