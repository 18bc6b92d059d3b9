package parser

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// parseBlock parses statements until a block terminator or EOF.
func (p *Parser) parseBlock() *ast.Block {
	b := &ast.Block{}
	for !p.blockEnd() {
		start := p.pos
		entry := &ast.StmtEntry{Stmt: p.parseStatement()}
		entry.Semi = p.eat(token.Semicolon)
		b.Stmts = append(b.Stmts, entry)
		if p.pos == start {
			tok := p.advance()
			b.Stmts = append(b.Stmts, &ast.StmtEntry{Stmt: &ast.ErrorStmt{Tokens: []token.Token{tok}}})
		}
	}
	return b
}

func (p *Parser) parseStatement() ast.Stmt {
	tok := p.peek()
	switch tok.Kind {
	case token.KwLocal:
		if p.peekAt(1).Kind == token.KwFunction {
			return p.parseLocalFunction(nil)
		}
		return p.parseLocalAssign()
	case token.KwFunction:
		return p.parseFunctionDecl(nil)
	case token.At:
		attrs := p.parseAttributes()
		if p.at(token.KwLocal) && p.peekAt(1).Kind == token.KwFunction {
			return p.parseLocalFunction(attrs)
		}
		if p.at(token.KwFunction) {
			return p.parseFunctionDecl(attrs)
		}
		p.err(diag.SynUnexpectedToken, "attributes must precede a function declaration")
		return p.errorStmtFromAttrs(attrs)
	case token.KwDo:
		s := &ast.DoStmt{Do: p.advance()}
		s.Body = p.parseBlock()
		s.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'do'")
		return s
	case token.KwWhile:
		s := &ast.WhileStmt{While: p.advance()}
		s.Cond = p.parseExpr()
		s.Do = p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' after while condition")
		s.Body = p.parseBlock()
		s.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'while'")
		return s
	case token.KwRepeat:
		s := &ast.RepeatStmt{Repeat: p.advance()}
		s.Body = p.parseBlock()
		s.Until = p.expect(token.KwUntil, diag.SynExpectUntil, "expected 'until' to close 'repeat'")
		s.Cond = p.parseExpr()
		return s
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwReturn:
		s := &ast.ReturnStmt{Return: p.advance()}
		if !p.blockEnd() && !p.at(token.Semicolon) {
			s.Values = p.parseExprList()
		}
		return s
	case token.KwBreak:
		return &ast.BreakStmt{Break: p.advance()}
	case token.Ident:
		switch {
		case tok.Text == "continue" && p.isContextualKeyword():
			return &ast.ContinueStmt{Continue: p.advance()}
		case tok.Text == "type" && p.isTypeStatement(1):
			return p.parseTypeStatement(nil)
		case tok.Text == "export" && p.peekAt(1).IsIdentText("type") && p.isTypeStatement(2):
			export := p.advance()
			return p.parseTypeStatement(&export)
		}
	}
	return p.parseExprStatement()
}

// isContextualKeyword reports whether the identifier at the cursor cannot
// start an expression statement, so it must be a keyword.
func (p *Parser) isContextualKeyword() bool {
	switch p.peekAt(1).Kind {
	case token.Dot, token.Colon, token.LBracket, token.LParen, token.LBrace,
		token.String, token.LongString, token.Assign, token.Comma:
		return false
	}
	return !p.peekAt(1).Kind.IsCompoundAssign()
}

func (p *Parser) isTypeStatement(offset int) bool {
	next := p.peekAt(offset)
	return next.Kind == token.Ident || next.Kind == token.KwFunction
}

func (p *Parser) errorStmtFromAttrs(attrs []*ast.Attribute) *ast.ErrorStmt {
	s := &ast.ErrorStmt{}
	for _, a := range attrs {
		s.Tokens = append(s.Tokens, a.At, a.Name)
	}
	return s
}

func (p *Parser) parseBinding() *ast.Binding {
	b := &ast.Binding{Name: p.expectName()}
	if b.Colon = p.eat(token.Colon); b.Colon != nil {
		b.Type = p.parseType()
	}
	return b
}

func (p *Parser) parseBindingList() ast.List[*ast.Binding] {
	var list ast.List[*ast.Binding]
	for {
		b := p.parseBinding()
		sep := p.eat(token.Comma)
		list.Push(b, sep)
		if sep == nil || b.Name.Kind == token.Invalid {
			return list
		}
	}
}

func (p *Parser) parseLocalAssign() *ast.LocalAssign {
	s := &ast.LocalAssign{Local: p.advance()}
	s.Names = p.parseBindingList()
	if s.Eq = p.eat(token.Assign); s.Eq != nil {
		s.Values = p.parseExprList()
	}
	return s
}

func (p *Parser) parseLocalFunction(attrs []*ast.Attribute) *ast.LocalFunction {
	s := &ast.LocalFunction{Attrs: attrs, Local: p.advance(), Function: p.advance()}
	s.Name = p.expectName()
	s.Body = p.parseFuncBody()
	return s
}

func (p *Parser) parseFunctionDecl(attrs []*ast.Attribute) *ast.FunctionDecl {
	s := &ast.FunctionDecl{Attrs: attrs, Function: p.advance(), Name: &ast.FuncName{}}
	for {
		name := p.expectName()
		dot := p.eat(token.Dot)
		s.Name.Parts.Push(name, dot)
		if dot == nil || name.Kind == token.Invalid {
			break
		}
	}
	if s.Name.Colon = p.eat(token.Colon); s.Name.Colon != nil {
		method := p.expectName()
		s.Name.Method = &method
	}
	s.Body = p.parseFuncBody()
	return s
}

func (p *Parser) parseIf() *ast.IfStmt {
	s := &ast.IfStmt{If: p.advance()}
	s.Cond = p.parseExpr()
	s.Then = p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' after if condition")
	s.Body = p.parseBlock()
	for p.at(token.KwElseif) {
		c := &ast.ElseIfClause{ElseIf: p.advance()}
		c.Cond = p.parseExpr()
		c.Then = p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' after elseif condition")
		c.Body = p.parseBlock()
		s.ElseIfs = append(s.ElseIfs, c)
	}
	if p.at(token.KwElse) {
		s.Else = &ast.ElseClause{Else: p.advance()}
		s.Else.Body = p.parseBlock()
	}
	s.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'if'")
	return s
}

func (p *Parser) parseFor() ast.Stmt {
	forTok := p.advance()
	first := p.parseBinding()
	if p.at(token.Assign) {
		s := &ast.NumericFor{For: forTok, Var: first, Eq: p.advance()}
		s.Start = p.parseExpr()
		s.Comma = p.expect(token.Comma, diag.SynForBadHeader, "expected ',' in numeric for")
		s.Limit = p.parseExpr()
		if s.Comma2 = p.eat(token.Comma); s.Comma2 != nil {
			s.Step = p.parseExpr()
		}
		s.Do = p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' in for loop")
		s.Body = p.parseBlock()
		s.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'for'")
		return s
	}

	s := &ast.GenericFor{For: forTok}
	sep := p.eat(token.Comma)
	s.Vars.Push(first, sep)
	if sep != nil {
		rest := p.parseBindingList()
		s.Vars.Items = append(s.Vars.Items, rest.Items...)
	}
	s.In = p.expect(token.KwIn, diag.SynForBadHeader, "expected '=' or 'in' in for loop")
	s.Exprs = p.parseExprList()
	s.Do = p.expect(token.KwDo, diag.SynExpectDo, "expected 'do' in for loop")
	s.Body = p.parseBlock()
	s.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close 'for'")
	return s
}

func (p *Parser) parseTypeStatement(export *token.Token) ast.Stmt {
	typeTok := p.advance()
	if p.at(token.KwFunction) {
		s := &ast.TypeFunction{Export: export, Type: typeTok, Function: p.advance()}
		s.Name = p.expectName()
		s.Body = p.parseFuncBody()
		return s
	}
	s := &ast.TypeDecl{Export: export, Type: typeTok, Name: p.expectName()}
	if p.at(token.Lt) {
		s.Generics = p.parseGenericDecl()
	}
	s.Eq = p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in type declaration")
	s.Value = p.parseType()
	return s
}

// parseExprStatement parses assignments, compound assignments and calls.
func (p *Parser) parseExprStatement() ast.Stmt {
	if !p.atAny(token.Ident, token.LParen) {
		tok := p.advance()
		p.errAt(diag.SynStatementExpected, tok.Span, "unexpected '"+tok.Text+"', expected statement")
		return &ast.ErrorStmt{Tokens: []token.Token{tok}}
	}
	expr := p.parseSuffixedExpr()

	switch {
	case p.at(token.Assign) || p.at(token.Comma):
		s := &ast.Assign{}
		target := expr
		for {
			p.checkAssignable(target)
			sep := p.eat(token.Comma)
			s.Targets.Push(target, sep)
			if sep == nil {
				break
			}
			target = p.parseSuffixedExpr()
		}
		s.Eq = p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in assignment")
		s.Values = p.parseExprList()
		return s
	case p.peek().Kind.IsCompoundAssign():
		p.checkAssignable(expr)
		op := p.advance()
		return &ast.CompoundAssign{Target: expr, Op: op, Value: p.parseExpr()}
	}

	call, ok := expr.(*ast.CallExpr)
	if !ok {
		if _, isErr := expr.(*ast.ErrorExpr); !isErr {
			p.err(diag.SynNotCallable, "expression statement must be a call or an assignment")
		}
		s := &ast.ErrorStmt{}
		ast.EachToken(expr, func(t *token.Token) bool {
			s.Tokens = append(s.Tokens, *t)
			return true
		})
		return s
	}
	return &ast.CallStmt{Call: call}
}

func (p *Parser) checkAssignable(e ast.Expr) {
	switch e.(type) {
	case *ast.NameExpr, *ast.FieldExpr, *ast.IndexExpr, *ast.ErrorExpr:
		return
	}
	if first := ast.FirstToken(e); first != nil {
		p.errAt(diag.SynUnexpectedToken, first.Span, "cannot assign to this expression")
	}
}
