package format

import (
	"strings"

	"luaufmt/internal/token"
)

// directive is a formatter instruction carried by a line comment.
type directive uint8

const (
	directiveNone directive = iota
	directiveSkip
	directiveSkipStart
	directiveSkipEnd
)

const directivePrefix = "@luau-fmt"

func commentDirective(tv token.Trivia) directive {
	if tv.Kind != token.TriviaLineComment {
		return directiveNone
	}
	body := strings.TrimSpace(strings.TrimPrefix(tv.Text, "--"))
	rest, ok := strings.CutPrefix(body, directivePrefix)
	if !ok {
		return directiveNone
	}
	switch strings.TrimSpace(rest) {
	case "skip":
		return directiveSkip
	case "skip-start":
		return directiveSkipStart
	case "skip-end":
		return directiveSkipEnd
	}
	return directiveNone
}

// leadComment is a comment found in leading trivia.
type leadComment struct {
	tv     token.Trivia
	index  int  // position in the trivia list
	blank  int  // blank lines before the comment
	inline bool // code or another comment follows on the same line
}

// scanLeading splits leading trivia into comments and counts the blank lines
// in front of each of them. tail is the number of blank lines between the
// last comment (or the start) and the token itself.
func scanLeading(list []token.Trivia) (comments []leadComment, tail int) {
	return scanLeadingAfter(list, false)
}

// scanLeadingAfter is scanLeading for trivia that continues after a comment
// which was already emitted, so the first newline only ends that line.
func scanLeadingAfter(list []token.Trivia, afterComment bool) (comments []leadComment, tail int) {
	newlines := 0
	seen := afterComment
	for i, tv := range list {
		switch {
		case tv.Kind == token.TriviaNewline:
			newlines += strings.Count(tv.Text, "\n")
		case tv.IsComment():
			blank := newlines
			if seen {
				blank--
			}
			comments = append(comments, leadComment{
				tv:     tv,
				index:  i,
				blank:  max(blank, 0),
				inline: tv.Kind == token.TriviaBlockComment && sameLineFollows(list, i),
			})
			newlines = 0
			seen = true
		}
	}
	tail = newlines
	if seen {
		tail--
	}
	if len(comments) > 0 && comments[len(comments)-1].inline {
		tail = 0
	}
	return comments, max(tail, 0)
}

// sameLineFollows reports whether something other than a newline follows
// list[i] on its line.
func sameLineFollows(list []token.Trivia, i int) bool {
	for j := i + 1; j < len(list); j++ {
		switch list[j].Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			return false
		default:
			return true
		}
	}
	return true
}

// writeCommentLines renders leading comments one per line at depth. Every
// line is introduced by a newline; first suppresses the blank lines before
// the first comment. It returns whether the output ends with an inline
// comment that the following code must continue.
func (p *printer) writeCommentLines(sb *strings.Builder, comments []leadComment, depth int, first bool) (inline bool) {
	fenced := false
	for i, c := range comments {
		if !inline {
			blank := p.blanks(c.blank)
			if first && i == 0 {
				blank = 0
			}
			sb.WriteString(strings.Repeat("\n", blank))
			sb.WriteString(p.nl(depth))
		}
		isFence := isFenceComment(c.tv)
		sb.WriteString(p.comment(c.tv, depth, fenced || isFence))
		if isFence {
			fenced = !fenced
		}
		inline = c.inline
		if inline {
			sb.WriteByte(' ')
		}
	}
	return inline
}

// leadingInline renders the comments of leading trivia for a token in the
// middle of a line.
func (p *printer) leadingInline(list []token.Trivia, depth int) string {
	if !token.HasComments(list) {
		return ""
	}
	var sb strings.Builder
	for i, tv := range list {
		if !tv.IsComment() {
			continue
		}
		sb.WriteString(p.comment(tv, depth, false))
		if tv.Kind == token.TriviaLineComment || !sameLineFollows(list, i) {
			sb.WriteString(p.nl(depth))
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// trailingInline renders the comments of trailing trivia. A trailing line
// comment forces a line break at depth.
func (p *printer) trailingInline(list []token.Trivia, depth int) string {
	s := p.trailingComments(list, depth)
	if s == "" {
		return ""
	}
	last := lastComment(list)
	if last.Kind == token.TriviaLineComment {
		s += p.nl(depth)
	}
	return s
}

// trailingComments renders every comment of list preceded by a space.
func (p *printer) trailingComments(list []token.Trivia, depth int) string {
	var sb strings.Builder
	for _, tv := range list {
		if tv.IsComment() {
			sb.WriteByte(' ')
			sb.WriteString(p.comment(tv, depth, false))
		}
	}
	return sb.String()
}

func lastComment(list []token.Trivia) token.Trivia {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].IsComment() {
			return list[i]
		}
	}
	return token.Trivia{}
}

// endsWithLineComment reports whether rendering list ends with a line
// comment, which must be followed by a line break.
func endsWithLineComment(list []token.Trivia) bool {
	return lastComment(list).Kind == token.TriviaLineComment && token.HasComments(list)
}

func isFenceComment(tv token.Trivia) bool {
	if tv.Kind != token.TriviaLineComment {
		return false
	}
	body := strings.TrimLeft(tv.Text, "-")
	return isFenceLine(body)
}

// isFenceLine matches a markdown code fence.
func isFenceLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "```")
}

// comment renders one comment, wrapping it at comments_width unless it is
// inside a code fence.
func (p *printer) comment(tv token.Trivia, depth int, fenced bool) string {
	switch tv.Kind {
	case token.TriviaLineComment:
		if fenced || commentDirective(tv) != directiveNone {
			return tv.Text
		}
		return p.lineComment(tv.Text, depth)
	case token.TriviaBlockComment:
		return p.blockComment(tv.Text, depth)
	}
	return ""
}

func (p *printer) lineComment(text string, depth int) string {
	if textWidth(text) <= p.cfg.CommentsWidth {
		return text
	}
	body := strings.TrimLeft(text, "-")
	marker := text[:len(text)-len(body)]
	body = strings.TrimSpace(body)
	if body == "" || strings.HasPrefix(body, "!") {
		return text
	}
	lines := wrapWords(strings.Fields(body), marker+" ", p.cfg.CommentsWidth)
	return strings.Join(lines, p.nl(depth))
}

func (p *printer) blockComment(text string, depth int) string {
	open, closing, ok := blockDelims(text)
	if !ok {
		return text
	}
	content := text[len(open) : len(text)-len(closing)]
	width := p.cfg.CommentsWidth

	if !strings.Contains(content, "\n") {
		if textWidth(text) <= width {
			return text
		}
		words := strings.Fields(content)
		if len(words) == 0 {
			return text
		}
		prefix := p.indent(depth + 1)
		lines := wrapWords(words, prefix, width)
		return open + "\n" + strings.Join(lines, "\n") + p.nl(depth) + closing
	}

	lines := strings.Split(content, "\n")
	fenced := false
	for i, line := range lines {
		if isFenceLine(line) {
			fenced = !fenced
			continue
		}
		if fenced || textWidth(line) <= width {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 {
			continue
		}
		prefix := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		lines[i] = strings.Join(wrapWords(words, prefix, width), "\n")
	}
	return open + strings.Join(lines, "\n") + closing
}

// blockDelims returns the `--[==[` opener and `]==]` closer of a block comment.
func blockDelims(text string) (open, closing string, ok bool) {
	if !strings.HasPrefix(text, "--[") {
		return "", "", false
	}
	level := 0
	i := 3
	for i < len(text) && text[i] == '=' {
		level++
		i++
	}
	if i >= len(text) || text[i] != '[' {
		return "", "", false
	}
	open = text[:i+1]
	closing = "]" + strings.Repeat("=", level) + "]"
	if len(text) < len(open)+len(closing) || !strings.HasSuffix(text, closing) {
		return "", "", false
	}
	return open, closing, true
}

// wrapWords fills lines greedily, each starting with prefix and at most width
// wide unless a single word is longer.
func wrapWords(words []string, prefix string, width int) []string {
	var lines []string
	cur := ""
	for _, w := range words {
		if cur == "" {
			cur = prefix + w
			continue
		}
		if textWidth(cur)+1+textWidth(w) > width {
			lines = append(lines, cur)
			cur = prefix + w
			continue
		}
		cur += " " + w
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
