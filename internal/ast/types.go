package ast

import "luaufmt/internal/token"

type (
	// NamedType is `Name`, `Module.Name` or `Name<Args>`.
	NamedType struct {
		Module *token.Token
		Dot    *token.Token
		Name   token.Token
		Args   *Bracketed[List[Type]]
	}

	// SingletonType is a string, boolean or nil literal used as a type.
	SingletonType struct {
		Tok token.Token
	}

	// TypeofType is `typeof(expr)`.
	TypeofType struct {
		Typeof token.Token
		Open   token.Token
		Expr   Expr
		Close  token.Token
	}

	TableType struct {
		Open   token.Token
		Fields List[*TableTypeField]
		Close  token.Token
	}

	// FunctionType is `<T>(a: A, B) -> R`.
	FunctionType struct {
		Generics *GenericDecl
		Params   Bracketed[List[*TypeParam]]
		Arrow    token.Token
		Ret      Type
	}

	// TypeParam is a function type parameter with an optional name.
	TypeParam struct {
		Name  *token.Token
		Colon *token.Token
		Type  Type
	}

	// UnionType is `A | B`; Leading is an optional `|` before the first member.
	UnionType struct {
		Leading *token.Token
		Members List[Type]
	}

	// IntersectionType is `A & B`; Leading is an optional `&` before the first member.
	IntersectionType struct {
		Leading *token.Token
		Members List[Type]
	}

	// OptionalType is `T?`.
	OptionalType struct {
		Inner    Type
		Question token.Token
	}

	ParenType struct {
		Open  token.Token
		Inner Type
		Close token.Token
	}

	// TupleType is a type pack `(A, B)` used for returns and pack arguments.
	TupleType struct {
		Open  token.Token
		Types List[Type]
		Close token.Token
	}

	// VariadicType is `...T`.
	VariadicType struct {
		Dots token.Token
		Type Type
	}

	// GenericPackType is `T...`.
	GenericPackType struct {
		Name token.Token
		Dots token.Token
	}

	ErrorType struct {
		Tokens []token.Token
	}
)

// TableTypeFieldKind distinguishes table type entries.
type TableTypeFieldKind uint8

const (
	// TypeFieldNamed is `name: T`.
	TypeFieldNamed TableTypeFieldKind = iota
	// TypeFieldIndexer is `[K]: V`.
	TypeFieldIndexer
	// TypeFieldArray is the single entry of `{ T }`.
	TypeFieldArray
)

type TableTypeField struct {
	Kind   TableTypeFieldKind
	Access *token.Token // read / write
	Name   token.Token
	LBrack token.Token
	Key    Type
	RBrack token.Token
	Colon  *token.Token
	Value  Type
}

func (*NamedType) node()        {}
func (*SingletonType) node()    {}
func (*TypeofType) node()       {}
func (*TableType) node()        {}
func (*FunctionType) node()     {}
func (*UnionType) node()        {}
func (*IntersectionType) node() {}
func (*OptionalType) node()     {}
func (*ParenType) node()        {}
func (*TupleType) node()        {}
func (*VariadicType) node()     {}
func (*GenericPackType) node()  {}
func (*ErrorType) node()        {}

func (*NamedType) typeNode()        {}
func (*SingletonType) typeNode()    {}
func (*TypeofType) typeNode()       {}
func (*TableType) typeNode()        {}
func (*FunctionType) typeNode()     {}
func (*UnionType) typeNode()        {}
func (*IntersectionType) typeNode() {}
func (*OptionalType) typeNode()     {}
func (*ParenType) typeNode()        {}
func (*TupleType) typeNode()        {}
func (*VariadicType) typeNode()     {}
func (*GenericPackType) typeNode()  {}
func (*ErrorType) typeNode()        {}
