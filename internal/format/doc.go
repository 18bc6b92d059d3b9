// Package format is the pretty-printing engine: it renders a parsed CST back
// to source text under a config.Config.
//
// Every renderer is a function of (node, depth, col): depth is the
// indentation level of the line the node starts on and col is the width
// already used on that line, indentation excluded. Composite nodes render a
// compact form first and fall back to an expanded form when the compact one
// does not fit into config.ColumnWidth.
//
// Comments travel with their tokens. Whitespace trivia is never copied; it is
// recomputed, except for blank lines between statements and inside
// skip regions (`--@luau-fmt skip-start` ... `--@luau-fmt skip-end`).
package format
