package style

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/config"
)

// CompactTable reports whether a table constructor may stay on one line.
// Empty tables are always compact.
func CompactTable(policy config.CompactTable, t *ast.TableExpr) bool {
	n := t.Fields.Len()
	if n == 0 {
		return true
	}
	switch policy {
	case config.CompactAlways:
		return true
	case config.CompactNever:
		return false
	case config.CompactSingleElement:
		return n == 1
	}
	for _, f := range t.Fields.Nodes() {
		if f.Kind == ast.FieldIndexed && !isLiteralExpr(f.Key) {
			return false
		}
		if !isLiteralExpr(f.Value) {
			return false
		}
	}
	return true
}

// isLiteralExpr matches nil, booleans, numbers, strings, bare names and
// nested tables made only of those.
func isLiteralExpr(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Literal:
		return true
	case *ast.NameExpr:
		return true
	case *ast.UnaryExpr:
		// negative numbers
		_, ok := e.Operand.(*ast.Literal)
		return ok && e.Op.Text == "-"
	case *ast.TableExpr:
		return CompactTable(config.CompactOnlyLiterals, e)
	}
	return false
}

// CompactTableType is CompactTable for table types.
func CompactTableType(policy config.CompactTable, t *ast.TableType) bool {
	n := t.Fields.Len()
	if n == 0 {
		return true
	}
	switch policy {
	case config.CompactAlways:
		return true
	case config.CompactNever:
		return false
	case config.CompactSingleElement:
		return n == 1
	}
	for _, f := range t.Fields.Nodes() {
		if f.Kind == ast.TypeFieldIndexer && !isLiteralType(f.Key) {
			return false
		}
		if !isLiteralType(f.Value) {
			return false
		}
	}
	return true
}

func isLiteralType(t ast.Type) bool {
	switch t := t.(type) {
	case *ast.SingletonType:
		return true
	case *ast.NamedType:
		return t.Args == nil
	case *ast.OptionalType:
		return isLiteralType(t.Inner)
	case *ast.TableType:
		return CompactTableType(config.CompactOnlyLiterals, t)
	}
	return false
}
