package parser

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/diag"
	"luaufmt/internal/token"
)

// parseType parses a full type: unions, intersections and optionals.
func (p *Parser) parseType() ast.Type {
	var leading *token.Token
	if p.atAny(token.Pipe, token.Amp) {
		leading = p.eat(p.peek().Kind)
	}
	first := p.parseOptionalType()
	if leading == nil && !p.atAny(token.Pipe, token.Amp) {
		return first
	}

	op := token.Pipe
	if leading != nil {
		op = leading.Kind
	} else if p.at(token.Amp) {
		op = token.Amp
	}
	var members ast.List[ast.Type]
	current := first
	for {
		sep := p.eat(op)
		members.Push(current, sep)
		if sep == nil {
			break
		}
		current = p.parseOptionalType()
	}
	if p.atAny(token.Pipe, token.Amp) {
		p.err(diag.SynUnexpectedToken, "mixing '|' and '&' requires parentheses")
	}
	if op == token.Amp {
		return &ast.IntersectionType{Leading: leading, Members: members}
	}
	return &ast.UnionType{Leading: leading, Members: members}
}

func (p *Parser) parseOptionalType() ast.Type {
	t := p.parseSimpleType()
	for p.at(token.Question) {
		t = &ast.OptionalType{Inner: t, Question: p.advance()}
	}
	return t
}

func (p *Parser) parseSimpleType() ast.Type {
	tok := p.peek()
	switch tok.Kind {
	case token.KwNil, token.KwTrue, token.KwFalse, token.String:
		return &ast.SingletonType{Tok: p.advance()}
	case token.LBrace:
		return p.parseTableType()
	case token.Lt:
		return p.parseFunctionType(p.parseGenericDecl())
	case token.LParen:
		return p.parseParenOrFunctionType()
	case token.Ident:
		if tok.Text == "typeof" && p.peekAt(1).Kind == token.LParen {
			t := &ast.TypeofType{Typeof: p.advance(), Open: p.advance()}
			t.Expr = p.parseExpr()
			t.Close = p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after typeof expression")
			return t
		}
		return p.parseNamedType()
	}
	p.err(diag.SynExpectType, "expected type, got '"+tok.Text+"'")
	return &ast.ErrorType{}
}

func (p *Parser) parseNamedType() *ast.NamedType {
	t := &ast.NamedType{Name: p.advance()}
	if p.at(token.Dot) {
		module := t.Name
		dot := p.advance()
		t.Module, t.Dot = &module, &dot
		t.Name = p.expectName()
	}
	if p.at(token.Lt) {
		args := &ast.Bracketed[ast.List[ast.Type]]{Open: p.advance()}
		for !p.atAny(token.Gt, token.EOF) {
			arg := p.parseTypeOrPack()
			sep := p.eat(token.Comma)
			args.Inner.Push(arg, sep)
			if sep == nil {
				break
			}
		}
		args.Close = p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments")
		t.Args = args
	}
	return t
}

// parseTypeOrPack parses a type argument, which may also be a pack:
// `...T`, `T...` or `(A, B)`.
func (p *Parser) parseTypeOrPack() ast.Type {
	switch {
	case p.at(token.DotDotDot):
		dots := p.advance()
		return &ast.VariadicType{Dots: dots, Type: p.parseType()}
	case p.at(token.Ident) && p.peekAt(1).Kind == token.DotDotDot:
		return &ast.GenericPackType{Name: p.advance(), Dots: p.advance()}
	}
	return p.parseType()
}

// parseReturnType parses a function return annotation.
func (p *Parser) parseReturnType() ast.Type {
	return p.parseTypeOrPack()
}

// parseVariadicAnnotation parses the annotation of `...: T` parameters.
func (p *Parser) parseVariadicAnnotation() ast.Type {
	if p.at(token.Ident) && p.peekAt(1).Kind == token.DotDotDot {
		return &ast.GenericPackType{Name: p.advance(), Dots: p.advance()}
	}
	return p.parseType()
}

// parseParenOrFunctionType handles `(T)`, `(A, B)` packs and `(a: A) -> R`.
func (p *Parser) parseParenOrFunctionType() ast.Type {
	open := p.advance()
	var params ast.List[*ast.TypeParam]
	named := false
	for !p.atAny(token.RParen, token.EOF) {
		start := p.pos
		param := &ast.TypeParam{}
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			name := p.advance()
			colon := p.advance()
			param.Name, param.Colon = &name, &colon
			named = true
		}
		param.Type = p.parseTypeOrPack()
		sep := p.eat(token.Comma)
		params.Push(param, sep)
		if sep == nil || p.pos == start {
			break
		}
	}
	closeTok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in type")
	bracketed := ast.Bracketed[ast.List[*ast.TypeParam]]{Open: open, Inner: params, Close: closeTok}

	if p.at(token.Arrow) {
		return p.finishFunctionType(nil, bracketed)
	}
	if named {
		p.err(diag.SynUnexpectedToken, "expected '->' after named parameters")
	}
	if params.Len() == 1 && params.Items[0].Sep == nil {
		if _, isPack := params.Items[0].Node.Type.(*ast.VariadicType); !isPack {
			if _, isGen := params.Items[0].Node.Type.(*ast.GenericPackType); !isGen {
				return &ast.ParenType{Open: open, Inner: params.Items[0].Node.Type, Close: closeTok}
			}
		}
	}
	tuple := &ast.TupleType{Open: open, Close: closeTok}
	for _, it := range params.Items {
		tuple.Types.Push(it.Node.Type, it.Sep)
	}
	return tuple
}

func (p *Parser) parseFunctionType(generics *ast.GenericDecl) ast.Type {
	if !p.at(token.LParen) {
		p.err(diag.SynExpectType, "expected '(' after generic parameters")
		return &ast.ErrorType{}
	}
	t := p.parseParenOrFunctionType()
	if fn, ok := t.(*ast.FunctionType); ok {
		fn.Generics = generics
		return fn
	}
	p.err(diag.SynExpectType, "expected function type after generic parameters")
	return t
}

func (p *Parser) finishFunctionType(generics *ast.GenericDecl, params ast.Bracketed[ast.List[*ast.TypeParam]]) *ast.FunctionType {
	fn := &ast.FunctionType{Generics: generics, Params: params, Arrow: p.advance()}
	fn.Ret = p.parseReturnType()
	return fn
}

func (p *Parser) parseTableType() *ast.TableType {
	t := &ast.TableType{Open: p.advance()}
	for !p.atAny(token.RBrace, token.EOF) {
		start := p.pos
		field := p.parseTableTypeField(t.Fields.Len() == 0)
		sep := p.eat(token.Comma)
		if sep == nil {
			sep = p.eat(token.Semicolon)
		}
		t.Fields.Push(field, sep)
		if sep == nil || p.pos == start || field.Kind == ast.TypeFieldArray {
			break
		}
	}
	t.Close = p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close table type")
	return t
}

func (p *Parser) parseTableTypeField(first bool) *ast.TableTypeField {
	f := &ast.TableTypeField{}
	if (p.atIdent("read") || p.atIdent("write")) &&
		(p.peekAt(1).Kind == token.Ident || p.peekAt(1).Kind == token.LBracket) &&
		p.peekAt(1).Kind != token.Colon {
		access := p.advance()
		f.Access = &access
	}
	switch {
	case p.at(token.LBracket):
		f.Kind = ast.TypeFieldIndexer
		f.LBrack = p.advance()
		f.Key = p.parseType()
		f.RBrack = p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'")
	case p.at(token.Ident) && p.peekAt(1).Kind == token.Colon:
		f.Kind = ast.TypeFieldNamed
		f.Name = p.advance()
	case first && f.Access == nil:
		f.Kind = ast.TypeFieldArray
		f.Value = p.parseType()
		return f
	default:
		p.err(diag.SynUnexpectedToken, "expected table type field")
		f.Kind = ast.TypeFieldNamed
		f.Name = token.Token{Kind: token.Invalid}
		f.Value = &ast.ErrorType{}
		return f
	}
	colon := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' in table type field")
	f.Colon = &colon
	f.Value = p.parseType()
	return f
}

// parseGenericDecl parses `<T, U..., V = Default>`.
func (p *Parser) parseGenericDecl() *ast.GenericDecl {
	g := &ast.GenericDecl{Open: p.advance()}
	for !p.atAny(token.Gt, token.EOF) {
		param := &ast.GenericParam{Name: p.expectName()}
		param.Dots = p.eat(token.DotDotDot)
		if param.Eq = p.eat(token.Assign); param.Eq != nil {
			if param.Dots != nil {
				param.Default = p.parseTypeOrPack()
			} else {
				param.Default = p.parseType()
			}
		}
		sep := p.eat(token.Comma)
		g.Inner.Push(param, sep)
		if sep == nil || param.Name.Kind == token.Invalid {
			break
		}
	}
	g.Close = p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close generic parameters")
	return g
}
