package parser

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

func (p *Parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

// parseSubExpr parses a chain of binary operators whose left priority is
// greater than limit.
func (p *Parser) parseSubExpr(limit int) ast.Expr {
	var left ast.Expr
	if isUnaryOp(p.peek().Kind) {
		op := p.advance()
		left = &ast.UnaryExpr{Op: op, Operand: p.parseSubExpr(precUnary)}
	} else {
		left = p.parseAsExpr()
	}
	for {
		lp, rp, ok := binaryPrec(p.peek().Kind)
		if !ok || lp <= limit {
			return left
		}
		op := p.advance()
		right := p.parseSubExpr(rp)
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right}
	}
}

// parseAsExpr parses a simple expression with optional `:: Type` casts.
func (p *Parser) parseAsExpr() ast.Expr {
	expr := p.parseSimpleExpr()
	for p.at(token.ColonColon) {
		op := p.advance()
		expr = &ast.CastExpr{Expr: expr, Op: op, Type: p.parseType()}
	}
	return expr
}

func (p *Parser) parseSimpleExpr() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.KwNil, token.KwTrue, token.KwFalse, token.Number,
		token.String, token.LongString, token.InterpString:
		return &ast.Literal{Tok: p.advance()}
	case token.DotDotDot:
		return &ast.Vararg{Tok: p.advance()}
	case token.LBrace:
		return p.parseTable()
	case token.At, token.KwFunction:
		attrs := p.parseAttributes()
		fn := p.expect(token.KwFunction, diag.SynUnexpectedToken, "expected 'function' after attributes")
		return &ast.FunctionExpr{Attrs: attrs, Function: fn, Body: p.parseFuncBody()}
	case token.KwIf:
		return p.parseIfExpr()
	default:
		return p.parseSuffixedExpr()
	}
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.peek().Kind {
	case token.Ident:
		return &ast.NameExpr{Tok: p.advance()}
	case token.LParen:
		open := p.advance()
		inner := p.parseExpr()
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		return &ast.ParenExpr{Open: open, Inner: inner, Close: closeTok}
	}
	p.err(diag.SynExpectExpression, "expected expression, got '"+p.peek().Text+"'")
	return &ast.ErrorExpr{}
}

// parseSuffixedExpr parses a primary expression followed by field, index,
// method and call suffixes.
func (p *Parser) parseSuffixedExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	if _, bad := expr.(*ast.ErrorExpr); bad {
		return expr
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.advance()
			expr = &ast.FieldExpr{Obj: expr, Dot: dot, Name: p.expectName()}
		case token.LBracket:
			open := p.advance()
			key := p.parseExpr()
			closeTok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
			expr = &ast.IndexExpr{Obj: expr, Open: open, Key: key, Close: closeTok}
		case token.Colon:
			colon := p.advance()
			method := p.expectName()
			expr = &ast.CallExpr{Fn: expr, Colon: &colon, Method: &method, Args: p.parseCallArgs()}
		case token.LParen, token.LBrace, token.String, token.LongString:
			expr = &ast.CallExpr{Fn: expr, Args: p.parseCallArgs()}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs() ast.CallArgs {
	switch p.peek().Kind {
	case token.LParen:
		open := p.advance()
		var args ast.List[ast.Expr]
		if !p.at(token.RParen) {
			args = p.parseExprList()
		}
		closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list")
		return &ast.ParenArgs{Open: open, Args: args, Close: closeTok}
	case token.LBrace:
		return &ast.TableArgs{Table: p.parseTable()}
	case token.String, token.LongString:
		return &ast.StringArgs{Tok: p.advance()}
	}
	p.err(diag.SynUnexpectedToken, "expected function arguments")
	return &ast.ParenArgs{
		Open:  token.Token{Kind: token.Invalid},
		Close: token.Token{Kind: token.Invalid},
	}
}

func (p *Parser) parseExprList() ast.List[ast.Expr] {
	var list ast.List[ast.Expr]
	for {
		expr := p.parseExpr()
		sep := p.eat(token.Comma)
		list.Push(expr, sep)
		if sep == nil {
			return list
		}
	}
}

func (p *Parser) parseTable() *ast.TableExpr {
	t := &ast.TableExpr{Open: p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")}
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		field := p.parseTableField()
		sep := p.eat(token.Comma)
		if sep == nil {
			sep = p.eat(token.Semicolon)
		}
		t.Fields.Push(field, sep)
		if sep == nil || p.pos == start {
			break
		}
	}
	t.Close = p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close table")
	return t
}

func (p *Parser) parseTableField() *ast.TableField {
	switch {
	case p.at(token.LBracket):
		f := &ast.TableField{Kind: ast.FieldIndexed, LBrack: p.advance()}
		f.Key = p.parseExpr()
		f.RBrack = p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
		eq := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after table key")
		f.Eq = &eq
		f.Value = p.parseExpr()
		return f
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Assign:
		f := &ast.TableField{Kind: ast.FieldNamed, Name: p.advance()}
		eq := p.advance()
		f.Eq = &eq
		f.Value = p.parseExpr()
		return f
	}
	return &ast.TableField{Kind: ast.FieldPositional, Value: p.parseExpr()}
}

func (p *Parser) parseIfExpr() *ast.IfExpr {
	e := &ast.IfExpr{If: p.advance()}
	e.Cond = p.parseExpr()
	e.Then = p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' in if-expression")
	e.ThenExpr = p.parseExpr()
	for p.at(token.KwElseif) {
		c := &ast.IfExprElseIf{ElseIf: p.advance()}
		c.Cond = p.parseExpr()
		c.Then = p.expect(token.KwThen, diag.SynExpectThen, "expected 'then' in if-expression")
		c.Value = p.parseExpr()
		e.ElseIfs = append(e.ElseIfs, c)
	}
	e.Else = p.expect(token.KwElse, diag.SynUnexpectedToken, "expected 'else' in if-expression")
	e.ElseExpr = p.parseExpr()
	return e
}

func (p *Parser) parseAttributes() []*ast.Attribute {
	var attrs []*ast.Attribute
	for p.at(token.At) {
		at := p.advance()
		attrs = append(attrs, &ast.Attribute{At: at, Name: p.expectName()})
	}
	return attrs
}

// parseFuncBody parses generics, parameters, return annotation, body and `end`.
func (p *Parser) parseFuncBody() *ast.FuncBody {
	body := &ast.FuncBody{}
	if p.at(token.Lt) {
		body.Generics = p.parseGenericDecl()
	}
	body.Params.Open = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' to start parameter list")
	for !p.atAny(token.RParen, token.EOF) {
		param := &ast.Param{}
		if p.at(token.DotDotDot) {
			param.Name = p.advance()
		} else {
			param.Name = p.expectName()
		}
		if param.Colon = p.eat(token.Colon); param.Colon != nil {
			if param.Name.Kind == token.DotDotDot {
				param.Type = p.parseVariadicAnnotation()
			} else {
				param.Type = p.parseType()
			}
		}
		sep := p.eat(token.Comma)
		body.Params.Inner.Push(param, sep)
		if sep == nil || param.Name.Kind == token.Invalid {
			break
		}
	}
	if n := body.Params.Inner.Len(); n > 0 && body.Params.Inner.Items[n-1].Sep != nil {
		p.errAt(diag.SynTrailingComma, body.Params.Inner.Items[n-1].Sep.Span, "trailing comma in parameter list")
	}
	body.Params.Close = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parameter list")
	if body.Colon = p.eat(token.Colon); body.Colon != nil {
		body.Ret = p.parseReturnType()
	}
	body.Body = p.parseBlock()
	body.End = p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' to close function")
	return body
}
