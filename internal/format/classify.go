package format

import (
	"luaufmt/internal/ast"
	"luaufmt/internal/config"
	"luaufmt/internal/style"
)

// stmtClass is the grouping classification of a statement.
type stmtClass uint8

const (
	classNone stmtClass = iota
	classRequire
	classService
)

func (c stmtClass) String() string {
	switch c {
	case classRequire:
		return "Require"
	case classService:
		return "GetService"
	}
	return "None"
}

// classify recognises `local x = require(...)` and
// `local x = game:GetService(...)` / `local x = game.X`, including the
// global assignment forms. The match is on spelling only: a local named
// `require` or `game` is treated like the global. The key is the assigned
// name as it will be rendered.
func classify(s ast.Stmt, cfg config.Config) (stmtClass, string) {
	if !cfg.SortRequires && !cfg.SortServices {
		return classNone, ""
	}
	var (
		name  string
		value ast.Expr
	)
	switch s := s.(type) {
	case *ast.LocalAssign:
		if s.Names.Len() != 1 || s.Values.Len() != 1 {
			return classNone, ""
		}
		name = s.Names.Items[0].Node.Name.Text
		value = s.Values.Items[0].Node
	case *ast.Assign:
		if s.Targets.Len() != 1 || s.Values.Len() != 1 {
			return classNone, ""
		}
		target, ok := s.Targets.Items[0].Node.(*ast.NameExpr)
		if !ok {
			return classNone, ""
		}
		name = target.Tok.Text
		value = s.Values.Items[0].Node
	default:
		return classNone, ""
	}
	class := classifyValue(value, cfg)
	if class == classNone {
		return classNone, ""
	}
	return class, style.ApplyRole(cfg, style.RoleVariable, name)
}

func classifyValue(e ast.Expr, cfg config.Config) stmtClass {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return classifyValue(e.Inner, cfg)
	case *ast.CastExpr:
		return classifyValue(e.Expr, cfg)
	case *ast.CallExpr:
		fn, ok := e.Fn.(*ast.NameExpr)
		if !ok || argCount(e.Args) != 1 {
			return classNone
		}
		if cfg.SortRequires && e.Method == nil && fn.Tok.Text == "require" {
			return classRequire
		}
		if cfg.SortServices && e.Method != nil && fn.Tok.Text == "game" &&
			(e.Method.Text == "GetService" || e.Method.Text == "getService") {
			return classService
		}
	case *ast.FieldExpr:
		obj, ok := e.Obj.(*ast.NameExpr)
		if cfg.SortServices && ok && obj.Tok.Text == "game" {
			return classService
		}
	}
	return classNone
}

func argCount(args ast.CallArgs) int {
	if pa, ok := args.(*ast.ParenArgs); ok {
		return pa.Args.Len()
	}
	return 1
}
