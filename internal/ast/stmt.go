package ast

import "luaufmt/internal/token"

type (
	// LocalAssign is `local a: T, b = x, y`.
	LocalAssign struct {
		Local  token.Token
		Names  List[*Binding]
		Eq     *token.Token
		Values List[Expr]
	}

	// Assign is `a, b.c = x, y`.
	Assign struct {
		Targets List[Expr]
		Eq      token.Token
		Values  List[Expr]
	}

	// CompoundAssign is `a += x` and friends.
	CompoundAssign struct {
		Target Expr
		Op     token.Token
		Value  Expr
	}

	// CallStmt is a function or method call used as a statement.
	CallStmt struct {
		Call *CallExpr
	}

	DoStmt struct {
		Do   token.Token
		Body *Block
		End  token.Token
	}

	WhileStmt struct {
		While token.Token
		Cond  Expr
		Do    token.Token
		Body  *Block
		End   token.Token
	}

	RepeatStmt struct {
		Repeat token.Token
		Body   *Block
		Until  token.Token
		Cond   Expr
	}

	IfStmt struct {
		If      token.Token
		Cond    Expr
		Then    token.Token
		Body    *Block
		ElseIfs []*ElseIfClause
		Else    *ElseClause
		End     token.Token
	}

	ElseIfClause struct {
		ElseIf token.Token
		Cond   Expr
		Then   token.Token
		Body   *Block
	}

	ElseClause struct {
		Else token.Token
		Body *Block
	}

	// NumericFor is `for i = a, b, c do ... end`.
	NumericFor struct {
		For    token.Token
		Var    *Binding
		Eq     token.Token
		Start  Expr
		Comma  token.Token
		Limit  Expr
		Comma2 *token.Token
		Step   Expr
		Do     token.Token
		Body   *Block
		End    token.Token
	}

	// GenericFor is `for k, v in pairs(t) do ... end`.
	GenericFor struct {
		For   token.Token
		Vars  List[*Binding]
		In    token.Token
		Exprs List[Expr]
		Do    token.Token
		Body  *Block
		End   token.Token
	}

	// FunctionDecl is `function a.b:c() end`.
	FunctionDecl struct {
		Attrs    []*Attribute
		Function token.Token
		Name     *FuncName
		Body     *FuncBody
	}

	// FuncName is a dotted function name with an optional method part.
	FuncName struct {
		Parts  List[token.Token] // names separated by dots
		Colon  *token.Token
		Method *token.Token
	}

	LocalFunction struct {
		Attrs    []*Attribute
		Local    token.Token
		Function token.Token
		Name     token.Token
		Body     *FuncBody
	}

	ReturnStmt struct {
		Return token.Token
		Values List[Expr]
	}

	BreakStmt struct {
		Break token.Token
	}

	ContinueStmt struct {
		Continue token.Token
	}

	// TypeDecl is `export type Name<T> = Value`.
	TypeDecl struct {
		Export   *token.Token
		Type     token.Token
		Name     token.Token
		Generics *GenericDecl
		Eq       token.Token
		Value    Type
	}

	// TypeFunction is `export type function name(...) ... end`.
	TypeFunction struct {
		Export   *token.Token
		Type     token.Token
		Function token.Token
		Name     token.Token
		Body     *FuncBody
	}

	// ErrorStmt holds tokens skipped while recovering from a parse error.
	ErrorStmt struct {
		Tokens []token.Token
	}
)

func (*LocalAssign) node()    {}
func (*Assign) node()         {}
func (*CompoundAssign) node() {}
func (*CallStmt) node()       {}
func (*DoStmt) node()         {}
func (*WhileStmt) node()      {}
func (*RepeatStmt) node()     {}
func (*IfStmt) node()         {}
func (*NumericFor) node()     {}
func (*GenericFor) node()     {}
func (*FunctionDecl) node()   {}
func (*LocalFunction) node()  {}
func (*ReturnStmt) node()     {}
func (*BreakStmt) node()      {}
func (*ContinueStmt) node()   {}
func (*TypeDecl) node()       {}
func (*TypeFunction) node()   {}
func (*ErrorStmt) node()      {}

func (*LocalAssign) stmtNode()    {}
func (*Assign) stmtNode()         {}
func (*CompoundAssign) stmtNode() {}
func (*CallStmt) stmtNode()       {}
func (*DoStmt) stmtNode()         {}
func (*WhileStmt) stmtNode()      {}
func (*RepeatStmt) stmtNode()     {}
func (*IfStmt) stmtNode()         {}
func (*NumericFor) stmtNode()     {}
func (*GenericFor) stmtNode()     {}
func (*FunctionDecl) stmtNode()   {}
func (*LocalFunction) stmtNode()  {}
func (*ReturnStmt) stmtNode()     {}
func (*BreakStmt) stmtNode()      {}
func (*ContinueStmt) stmtNode()   {}
func (*TypeDecl) stmtNode()       {}
func (*TypeFunction) stmtNode()   {}
func (*ErrorStmt) stmtNode()      {}
