package ast

import "luaufmt/internal/token"

type (
	// Literal is nil, true, false, a number or any string literal.
	Literal struct {
		Tok token.Token
	}

	Vararg struct {
		Tok token.Token
	}

	NameExpr struct {
		Tok token.Token
	}

	// FieldExpr is `obj.name`.
	FieldExpr struct {
		Obj  Expr
		Dot  token.Token
		Name token.Token
	}

	// IndexExpr is `obj[key]`.
	IndexExpr struct {
		Obj   Expr
		Open  token.Token
		Key   Expr
		Close token.Token
	}

	ParenExpr struct {
		Open  token.Token
		Inner Expr
		Close token.Token
	}

	// CallExpr is `fn(args)` or `obj:method(args)`.
	CallExpr struct {
		Fn     Expr
		Colon  *token.Token
		Method *token.Token
		Args   CallArgs
	}

	FunctionExpr struct {
		Attrs    []*Attribute
		Function token.Token
		Body     *FuncBody
	}

	TableExpr struct {
		Open   token.Token
		Fields List[*TableField]
		Close  token.Token
	}

	UnaryExpr struct {
		Op      token.Token
		Operand Expr
	}

	BinaryExpr struct {
		Left  Expr
		Op    token.Token
		Right Expr
	}

	// CastExpr is `expr :: Type`.
	CastExpr struct {
		Expr Expr
		Op   token.Token
		Type Type
	}

	// IfExpr is `if c then a elseif d then b else e`.
	IfExpr struct {
		If       token.Token
		Cond     Expr
		Then     token.Token
		ThenExpr Expr
		ElseIfs  []*IfExprElseIf
		Else     token.Token
		ElseExpr Expr
	}

	IfExprElseIf struct {
		ElseIf token.Token
		Cond   Expr
		Then   token.Token
		Value  Expr
	}

	// ErrorExpr holds tokens skipped while recovering from a parse error.
	ErrorExpr struct {
		Tokens []token.Token
	}
)

// FieldKind distinguishes table constructor entries.
type FieldKind uint8

const (
	// FieldPositional is `value`.
	FieldPositional FieldKind = iota
	// FieldNamed is `name = value`.
	FieldNamed
	// FieldIndexed is `[key] = value`.
	FieldIndexed
)

type TableField struct {
	Kind   FieldKind
	Name   token.Token  // FieldNamed
	LBrack token.Token  // FieldIndexed
	Key    Expr         // FieldIndexed
	RBrack token.Token  // FieldIndexed
	Eq     *token.Token // FieldNamed, FieldIndexed
	Value  Expr
}

// CallArgs is the argument part of a call.
type CallArgs interface {
	Node
	argsNode()
}

type (
	ParenArgs struct {
		Open  token.Token
		Args  List[Expr]
		Close token.Token
	}

	// TableArgs is `f { ... }`.
	TableArgs struct {
		Table *TableExpr
	}

	// StringArgs is `f "..."`.
	StringArgs struct {
		Tok token.Token
	}
)

func (*Literal) node()      {}
func (*Vararg) node()       {}
func (*NameExpr) node()     {}
func (*FieldExpr) node()    {}
func (*IndexExpr) node()    {}
func (*ParenExpr) node()    {}
func (*CallExpr) node()     {}
func (*FunctionExpr) node() {}
func (*TableExpr) node()    {}
func (*UnaryExpr) node()    {}
func (*BinaryExpr) node()   {}
func (*CastExpr) node()     {}
func (*IfExpr) node()       {}
func (*ErrorExpr) node()    {}
func (*ParenArgs) node()    {}
func (*TableArgs) node()    {}
func (*StringArgs) node()   {}

func (*Literal) exprNode()      {}
func (*Vararg) exprNode()       {}
func (*NameExpr) exprNode()     {}
func (*FieldExpr) exprNode()    {}
func (*IndexExpr) exprNode()    {}
func (*ParenExpr) exprNode()    {}
func (*CallExpr) exprNode()     {}
func (*FunctionExpr) exprNode() {}
func (*TableExpr) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*CastExpr) exprNode()     {}
func (*IfExpr) exprNode()       {}
func (*ErrorExpr) exprNode()    {}

func (*ParenArgs) argsNode()  {}
func (*TableArgs) argsNode()  {}
func (*StringArgs) argsNode() {}
