package ast

import (
	"fmt"

	"luaufmt/internal/token"
)

// Visitor receives tokens in source order; returning false stops the walk.
type Visitor func(tok *token.Token) bool

type walker struct {
	fn      Visitor
	stopped bool
}

// EachToken visits every token reachable from n in source order.
func EachToken(n Node, fn Visitor) {
	w := &walker{fn: fn}
	w.node(n)
}

// EachBlockToken visits every token of a block, including semicolons.
func EachBlockToken(b *Block, fn Visitor) {
	w := &walker{fn: fn}
	w.block(b)
}

// FirstToken returns the first token of n, or nil for an empty node.
func FirstToken(n Node) *token.Token {
	var first *token.Token
	EachToken(n, func(t *token.Token) bool {
		first = t
		return false
	})
	return first
}

// LastToken returns the last token of n, or nil for an empty node.
func LastToken(n Node) *token.Token {
	var last *token.Token
	EachToken(n, func(t *token.Token) bool {
		last = t
		return true
	})
	return last
}

// HasComments reports whether any token of n carries comment trivia.
// When inner is true, the leading trivia of the first token and the trailing
// trivia of the last token are ignored.
func HasComments(n Node, inner bool) bool {
	first, last := FirstToken(n), LastToken(n)
	found := false
	EachToken(n, func(t *token.Token) bool {
		lead, trail := t.Leading, t.Trailing
		if inner && t == first {
			lead = nil
		}
		if inner && t == last {
			trail = nil
		}
		if token.HasComments(lead) || token.HasComments(trail) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (w *walker) tok(t *token.Token) {
	if w.stopped || t == nil {
		return
	}
	if !w.fn(t) {
		w.stopped = true
	}
}

func (w *walker) block(b *Block) {
	if b == nil {
		return
	}
	for _, e := range b.Stmts {
		w.node(e.Stmt)
		w.tok(e.Semi)
	}
}

func walkList[T Node](w *walker, l List[T]) {
	for _, it := range l.Items {
		w.node(it.Node)
		w.tok(it.Sep)
	}
}

func (w *walker) attrs(attrs []*Attribute) {
	for _, a := range attrs {
		w.tok(&a.At)
		w.tok(&a.Name)
	}
}

func (w *walker) generics(g *GenericDecl) {
	if g == nil {
		return
	}
	w.tok(&g.Open)
	walkList(w, g.Inner)
	w.tok(&g.Close)
}

func (w *walker) funcBody(b *FuncBody) {
	w.generics(b.Generics)
	w.tok(&b.Params.Open)
	walkList(w, b.Params.Inner)
	w.tok(&b.Params.Close)
	w.tok(b.Colon)
	w.node(b.Ret)
	w.block(b.Body)
	w.tok(&b.End)
}

func (w *walker) node(n Node) {
	if w.stopped || n == nil {
		return
	}
	switch n := n.(type) {
	// helpers
	case *Binding:
		w.tok(&n.Name)
		w.tok(n.Colon)
		w.node(n.Type)
	case *Param:
		w.tok(&n.Name)
		w.tok(n.Colon)
		w.node(n.Type)
	case *GenericParam:
		w.tok(&n.Name)
		w.tok(n.Dots)
		w.tok(n.Eq)
		w.node(n.Default)
	case *TableField:
		switch n.Kind {
		case FieldNamed:
			w.tok(&n.Name)
		case FieldIndexed:
			w.tok(&n.LBrack)
			w.node(n.Key)
			w.tok(&n.RBrack)
		}
		w.tok(n.Eq)
		w.node(n.Value)
	case *TableTypeField:
		w.tok(n.Access)
		switch n.Kind {
		case TypeFieldNamed:
			w.tok(&n.Name)
		case TypeFieldIndexer:
			w.tok(&n.LBrack)
			w.node(n.Key)
			w.tok(&n.RBrack)
		}
		w.tok(n.Colon)
		w.node(n.Value)
	case *TypeParam:
		w.tok(n.Name)
		w.tok(n.Colon)
		w.node(n.Type)

	// statements
	case *LocalAssign:
		w.tok(&n.Local)
		walkList(w, n.Names)
		w.tok(n.Eq)
		walkList(w, n.Values)
	case *Assign:
		walkList(w, n.Targets)
		w.tok(&n.Eq)
		walkList(w, n.Values)
	case *CompoundAssign:
		w.node(n.Target)
		w.tok(&n.Op)
		w.node(n.Value)
	case *CallStmt:
		w.node(n.Call)
	case *DoStmt:
		w.tok(&n.Do)
		w.block(n.Body)
		w.tok(&n.End)
	case *WhileStmt:
		w.tok(&n.While)
		w.node(n.Cond)
		w.tok(&n.Do)
		w.block(n.Body)
		w.tok(&n.End)
	case *RepeatStmt:
		w.tok(&n.Repeat)
		w.block(n.Body)
		w.tok(&n.Until)
		w.node(n.Cond)
	case *IfStmt:
		w.tok(&n.If)
		w.node(n.Cond)
		w.tok(&n.Then)
		w.block(n.Body)
		for _, c := range n.ElseIfs {
			w.tok(&c.ElseIf)
			w.node(c.Cond)
			w.tok(&c.Then)
			w.block(c.Body)
		}
		if n.Else != nil {
			w.tok(&n.Else.Else)
			w.block(n.Else.Body)
		}
		w.tok(&n.End)
	case *NumericFor:
		w.tok(&n.For)
		w.node(n.Var)
		w.tok(&n.Eq)
		w.node(n.Start)
		w.tok(&n.Comma)
		w.node(n.Limit)
		w.tok(n.Comma2)
		w.node(n.Step)
		w.tok(&n.Do)
		w.block(n.Body)
		w.tok(&n.End)
	case *GenericFor:
		w.tok(&n.For)
		walkList(w, n.Vars)
		w.tok(&n.In)
		walkList(w, n.Exprs)
		w.tok(&n.Do)
		w.block(n.Body)
		w.tok(&n.End)
	case *FunctionDecl:
		w.attrs(n.Attrs)
		w.tok(&n.Function)
		for i := range n.Name.Parts.Items {
			it := &n.Name.Parts.Items[i]
			w.tok(&it.Node)
			w.tok(it.Sep)
		}
		w.tok(n.Name.Colon)
		w.tok(n.Name.Method)
		w.funcBody(n.Body)
	case *LocalFunction:
		w.attrs(n.Attrs)
		w.tok(&n.Local)
		w.tok(&n.Function)
		w.tok(&n.Name)
		w.funcBody(n.Body)
	case *ReturnStmt:
		w.tok(&n.Return)
		walkList(w, n.Values)
	case *BreakStmt:
		w.tok(&n.Break)
	case *ContinueStmt:
		w.tok(&n.Continue)
	case *TypeDecl:
		w.tok(n.Export)
		w.tok(&n.Type)
		w.tok(&n.Name)
		w.generics(n.Generics)
		w.tok(&n.Eq)
		w.node(n.Value)
	case *TypeFunction:
		w.tok(n.Export)
		w.tok(&n.Type)
		w.tok(&n.Function)
		w.tok(&n.Name)
		w.funcBody(n.Body)
	case *ErrorStmt:
		for i := range n.Tokens {
			w.tok(&n.Tokens[i])
		}

	// expressions
	case *Literal:
		w.tok(&n.Tok)
	case *Vararg:
		w.tok(&n.Tok)
	case *NameExpr:
		w.tok(&n.Tok)
	case *FieldExpr:
		w.node(n.Obj)
		w.tok(&n.Dot)
		w.tok(&n.Name)
	case *IndexExpr:
		w.node(n.Obj)
		w.tok(&n.Open)
		w.node(n.Key)
		w.tok(&n.Close)
	case *ParenExpr:
		w.tok(&n.Open)
		w.node(n.Inner)
		w.tok(&n.Close)
	case *CallExpr:
		w.node(n.Fn)
		w.tok(n.Colon)
		w.tok(n.Method)
		w.node(n.Args)
	case *ParenArgs:
		w.tok(&n.Open)
		walkList(w, n.Args)
		w.tok(&n.Close)
	case *TableArgs:
		w.node(n.Table)
	case *StringArgs:
		w.tok(&n.Tok)
	case *FunctionExpr:
		w.attrs(n.Attrs)
		w.tok(&n.Function)
		w.funcBody(n.Body)
	case *TableExpr:
		w.tok(&n.Open)
		walkList(w, n.Fields)
		w.tok(&n.Close)
	case *UnaryExpr:
		w.tok(&n.Op)
		w.node(n.Operand)
	case *BinaryExpr:
		w.node(n.Left)
		w.tok(&n.Op)
		w.node(n.Right)
	case *CastExpr:
		w.node(n.Expr)
		w.tok(&n.Op)
		w.node(n.Type)
	case *IfExpr:
		w.tok(&n.If)
		w.node(n.Cond)
		w.tok(&n.Then)
		w.node(n.ThenExpr)
		for _, c := range n.ElseIfs {
			w.tok(&c.ElseIf)
			w.node(c.Cond)
			w.tok(&c.Then)
			w.node(c.Value)
		}
		w.tok(&n.Else)
		w.node(n.ElseExpr)
	case *ErrorExpr:
		for i := range n.Tokens {
			w.tok(&n.Tokens[i])
		}

	// types
	case *NamedType:
		w.tok(n.Module)
		w.tok(n.Dot)
		w.tok(&n.Name)
		if n.Args != nil {
			w.tok(&n.Args.Open)
			walkList(w, n.Args.Inner)
			w.tok(&n.Args.Close)
		}
	case *SingletonType:
		w.tok(&n.Tok)
	case *TypeofType:
		w.tok(&n.Typeof)
		w.tok(&n.Open)
		w.node(n.Expr)
		w.tok(&n.Close)
	case *TableType:
		w.tok(&n.Open)
		walkList(w, n.Fields)
		w.tok(&n.Close)
	case *FunctionType:
		w.generics(n.Generics)
		w.tok(&n.Params.Open)
		walkList(w, n.Params.Inner)
		w.tok(&n.Params.Close)
		w.tok(&n.Arrow)
		w.node(n.Ret)
	case *UnionType:
		w.tok(n.Leading)
		walkList(w, n.Members)
	case *IntersectionType:
		w.tok(n.Leading)
		walkList(w, n.Members)
	case *OptionalType:
		w.node(n.Inner)
		w.tok(&n.Question)
	case *ParenType:
		w.tok(&n.Open)
		w.node(n.Inner)
		w.tok(&n.Close)
	case *TupleType:
		w.tok(&n.Open)
		walkList(w, n.Types)
		w.tok(&n.Close)
	case *VariadicType:
		w.tok(&n.Dots)
		w.node(n.Type)
	case *GenericPackType:
		w.tok(&n.Name)
		w.tok(&n.Dots)
	case *ErrorType:
		for i := range n.Tokens {
			w.tok(&n.Tokens[i])
		}
	default:
		panic(fmt.Sprintf("ast: unhandled node %T", n))
	}
}
