// Package fuzztests houses Go fuzz harnesses for the pipeline from source
// bytes through the lexer and parser to the formatter. They guard against
// panics, hangs and broken invariants on arbitrary input.
package fuzztests
