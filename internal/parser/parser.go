// Package parser builds the concrete syntax tree for Luau sources.
//
// The parser is a hand-written recursive descent over the full token slice
// produced by the lexer. It never fails: syntax errors are reported through
// Options.Reporter, recovered from by wrapping skipped tokens in Error nodes,
// and recorded in Cst.HasErrors.
package parser

import (
	"slices"

	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/lexer"
	"luaufmt/internal/source"
	"luaufmt/internal/token"
)

type Options struct {
	MaxErrors uint // 0 means unlimited
	Reporter  diag.Reporter
}

// Parser holds the state for one file.
type Parser struct {
	file   *source.File
	toks   []token.Token
	pos    int
	opts   Options
	errors uint
}

// ParseFile lexes and parses file. Lexical and syntax errors both mark the
// returned Cst as erroneous.
func ParseFile(file *source.File, opts Options) *ast.Cst {
	p := &Parser{file: file, opts: opts}
	p.toks = lexer.Tokenize(file, lexer.Options{Reporter: countingReporter{p: p}})

	cst := &ast.Cst{Path: file.Path, Block: &ast.Block{}}
	for {
		block := p.parseBlock()
		cst.Block.Stmts = append(cst.Block.Stmts, block.Stmts...)
		if p.at(token.EOF) {
			break
		}
		// a stray block terminator at top level
		tok := p.advance()
		p.errAt(diag.SynUnexpectedToken, tok.Span, "unexpected '"+tok.Text+"'")
		cst.Block.Stmts = append(cst.Block.Stmts, &ast.StmtEntry{Stmt: &ast.ErrorStmt{Tokens: []token.Token{tok}}})
	}
	cst.EOF = p.advance()
	cst.HasErrors = p.errors > 0
	return cst
}

// countingReporter forwards lexer diagnostics and counts errors.
type countingReporter struct{ p *Parser }

func (r countingReporter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	r.p.report(code, sev, sp, msg, notes)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes []diag.Note) {
	if sev == diag.SevError {
		p.errors++
	}
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
}

func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) {
	p.report(code, diag.SevError, sp, msg, nil)
}

// err reports an error at the current token.
func (p *Parser) err(code diag.Code, msg string) {
	p.errAt(code, p.peek().Span, msg)
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.toks[p.pos].Kind)
}

func (p *Parser) atIdent(text string) bool {
	return p.toks[p.pos].IsIdentText(text)
}

// advance consumes the current token; EOF is never consumed.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// eat consumes the current token if it has kind k.
func (p *Parser) eat(k token.Kind) *token.Token {
	if !p.at(k) {
		return nil
	}
	tok := p.advance()
	return &tok
}

// expect consumes a token of kind k or reports code and returns a synthetic
// Invalid token without consuming anything.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.peek().Span}
}

func (p *Parser) expectName() token.Token {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier, got '"+p.peek().Text+"'")
}

func (p *Parser) blockEnd() bool {
	return p.atAny(token.EOF, token.KwEnd, token.KwElse, token.KwElseif, token.KwUntil)
}
