package token

import "luaufmt/internal/source"

type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces and tabs.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a run of consecutive '\n'.
	TriviaNewline
	// TriviaLineComment is `-- ...` up to (not including) the newline.
	TriviaLineComment
	// TriviaBlockComment is `--[[ ... ]]` or `--[==[ ... ]==]`.
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Trivia(?)"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia item is a comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment
}

// Newlines returns the number of line breaks carried by the item.
func (t Trivia) Newlines() int {
	n := 0
	if t.Kind == TriviaNewline || t.Kind == TriviaBlockComment {
		for i := 0; i < len(t.Text); i++ {
			if t.Text[i] == '\n' {
				n++
			}
		}
	}
	return n
}

// HasComments reports whether any trivia item in list is a comment.
func HasComments(list []Trivia) bool {
	for _, tv := range list {
		if tv.IsComment() {
			return true
		}
	}
	return false
}
