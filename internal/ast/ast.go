// Package ast defines the concrete syntax tree produced by the parser.
//
// Every token of the source, together with its leading and trailing trivia,
// is reachable from exactly one node. Nodes are plain pointers; the tree is
// built once and never mutated by consumers.
package ast

import (
	"luaufmt/internal/token"
)

// Node is any CST node.
type Node interface {
	node()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Type is a type annotation node.
type Type interface {
	Node
	typeNode()
}

// Cst is the root of a parsed file.
type Cst struct {
	Path      string
	Block     *Block
	EOF       token.Token // carries trivia after the last statement
	HasErrors bool
}

// Block is an ordered statement list.
type Block struct {
	Stmts []*StmtEntry
}

// StmtEntry is a statement with its optional `;`.
type StmtEntry struct {
	Stmt Stmt
	Semi *token.Token
}

// List is a separated sequence. Sep is nil for the last item unless the
// source has a trailing separator.
type List[T any] struct {
	Items []ListItem[T]
}

type ListItem[T any] struct {
	Node T
	Sep  *token.Token
}

// Len returns the number of items.
func (l List[T]) Len() int { return len(l.Items) }

// Nodes returns the items without separators.
func (l List[T]) Nodes() []T {
	out := make([]T, len(l.Items))
	for i, it := range l.Items {
		out[i] = it.Node
	}
	return out
}

// Push appends an item.
func (l *List[T]) Push(n T, sep *token.Token) {
	l.Items = append(l.Items, ListItem[T]{Node: n, Sep: sep})
}

// Bracketed wraps an inner value in an opening and closing delimiter.
type Bracketed[T any] struct {
	Open  token.Token
	Inner T
	Close token.Token
}

// Attribute is a function attribute such as `@native`.
type Attribute struct {
	At   token.Token
	Name token.Token
}

// Binding is a declared name with an optional type annotation.
type Binding struct {
	Name  token.Token
	Colon *token.Token
	Type  Type
}

// GenericParam is `T`, `T...`, `T = Default` or `T... = ...Default`.
type GenericParam struct {
	Name    token.Token
	Dots    *token.Token
	Eq      *token.Token
	Default Type
}

// GenericDecl is `<T, U...>`.
type GenericDecl = Bracketed[List[*GenericParam]]

// Param is a function parameter. Name is `...` for a variadic parameter.
type Param struct {
	Name  token.Token
	Colon *token.Token
	Type  Type
}

// FuncBody is everything after the function name: generics, parameters,
// return annotation, body and `end`.
type FuncBody struct {
	Generics *GenericDecl
	Params   Bracketed[List[*Param]]
	Colon    *token.Token
	Ret      Type
	Body     *Block
	End      token.Token
}

func (*Binding) node()        {}
func (*Param) node()          {}
func (*GenericParam) node()   {}
func (*TableField) node()     {}
func (*TableTypeField) node() {}
func (*TypeParam) node()      {}
