package style

import (
	"strings"

	"luaufmt/internal/config"
)

// Requote converts a quoted string literal (including its delimiters) to the
// quoting selected by qs. Long strings, interpolated strings and malformed
// input are returned unchanged.
func Requote(lit string, qs config.QuoteStyle) string {
	if len(lit) < 2 {
		return lit
	}
	open := lit[0]
	if (open != '"' && open != '\'') || lit[len(lit)-1] != open {
		return lit
	}
	body := lit[1 : len(lit)-1]
	target := pickQuote(body, qs)
	return string(target) + rewriteBody(body, target) + string(target)
}

// pickQuote returns the delimiter for body under qs. The Prefer styles keep
// the preferred delimiter unless the alternative needs fewer escapes.
func pickQuote(body string, qs config.QuoteStyle) byte {
	switch qs {
	case config.QuoteDouble:
		return '"'
	case config.QuoteSingle:
		return '\''
	}
	doubles, singles := EscapeCounts(body)
	if qs == config.QuotePreferSingle {
		if singles <= doubles {
			return '\''
		}
		return '"'
	}
	if doubles <= singles {
		return '"'
	}
	return '\''
}

// EscapeCounts returns how many escapes body would need when delimited by
// double and by single quotes respectively.
func EscapeCounts(body string) (doubles, singles int) {
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			c = body[i]
		}
		switch c {
		case '"':
			doubles++
		case '\'':
			singles++
		}
	}
	return doubles, singles
}

// rewriteBody escapes bare occurrences of quote and drops the backslash from
// escaped occurrences of the other quote character.
func rewriteBody(body string, quote byte) string {
	other := byte('\'')
	if quote == '\'' {
		other = '"'
	}
	var sb strings.Builder
	sb.Grow(len(body) + 4)
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			next := body[i+1]
			i++
			if next == other {
				sb.WriteByte(next)
				continue
			}
			sb.WriteByte('\\')
			sb.WriteByte(next)
			continue
		}
		if c == quote {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
