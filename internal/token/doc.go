// Package token defines lexical token kinds and trivia for Luau sources.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly.
//   - Trailing trivia holds everything after a token on the same line, up to
//     and including the first newline. All other trivia is Leading trivia of
//     the next token (or of EOF).
//   - Contextual keywords (continue, type, export, typeof) are identifiers;
//     the parser recognises them by text.
package token
