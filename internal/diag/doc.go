// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Phases emit through a Reporter so that storage (Bag) and rendering
// (internal/diagfmt) stay decoupled from producers. Diagnostics are plain
// data: a Severity, a stable Code, a message and a primary span.
//
// The formatter treats any SevError diagnostic from parsing as fatal for the
// file: the CST is marked erroneous and the file is skipped.
package diag
