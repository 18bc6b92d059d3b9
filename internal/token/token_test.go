package token

import "testing"

func TestKeywordLookup(t *testing.T) {
	for word, kind := range keywords {
		got, ok := LookupKeyword(word)
		if !ok || got != kind {
			t.Fatalf("%q: want %v, got %v", word, kind, got)
		}
		if !(Token{Kind: got}).IsKeyword() {
			t.Fatalf("%q: %v is not classified as keyword", word, got)
		}
	}
	for _, ctx := range []string{"continue", "type", "export", "typeof", "self"} {
		if IsReserved(ctx) {
			t.Fatalf("%q must lex as an identifier", ctx)
		}
	}
}

func TestKindStringCoversAll(t *testing.T) {
	for k := Invalid; k <= At; k++ {
		if k.String() == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestCompoundAssign(t *testing.T) {
	for _, k := range []Kind{PlusEq, MinusEq, StarEq, SlashEq, SlashSlashEq, PercentEq, CaretEq, DotDotEq} {
		if !k.IsCompoundAssign() {
			t.Fatalf("%v should be compound", k)
		}
	}
	if Assign.IsCompoundAssign() || LParen.IsCompoundAssign() {
		t.Fatalf("plain tokens classified as compound assignment")
	}
}

func TestTriviaNewlines(t *testing.T) {
	tests := []struct {
		tv   Trivia
		want int
	}{
		{Trivia{Kind: TriviaNewline, Text: "\n\n"}, 2},
		{Trivia{Kind: TriviaSpace, Text: "  "}, 0},
		{Trivia{Kind: TriviaBlockComment, Text: "--[[a\nb]]"}, 1},
		{Trivia{Kind: TriviaLineComment, Text: "-- x"}, 0},
	}
	for _, tt := range tests {
		if got := tt.tv.Newlines(); got != tt.want {
			t.Fatalf("%q: want %d, got %d", tt.tv.Text, tt.want, got)
		}
	}
}
