package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"luaufmt/internal/ast"
	"luaufmt/internal/source"
)

// CstNodeOutput is one statement of the outline. Children holds the
// statements of nested blocks, each block introduced by a labelled node.
type CstNodeOutput struct {
	Kind     string          `json:"kind"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []CstNodeOutput `json:"children,omitempty"`
}

type labeledBlock struct {
	label string
	block *ast.Block
}

func stmtBlocks(s ast.Stmt) []labeledBlock {
	switch n := s.(type) {
	case *ast.DoStmt:
		return []labeledBlock{{"do", n.Body}}
	case *ast.WhileStmt:
		return []labeledBlock{{"do", n.Body}}
	case *ast.RepeatStmt:
		return []labeledBlock{{"repeat", n.Body}}
	case *ast.IfStmt:
		out := []labeledBlock{{"then", n.Body}}
		for _, c := range n.ElseIfs {
			out = append(out, labeledBlock{"elseif", c.Body})
		}
		if n.Else != nil {
			out = append(out, labeledBlock{"else", n.Else.Body})
		}
		return out
	case *ast.NumericFor:
		return []labeledBlock{{"do", n.Body}}
	case *ast.GenericFor:
		return []labeledBlock{{"do", n.Body}}
	case *ast.FunctionDecl:
		return []labeledBlock{{"body", n.Body.Body}}
	case *ast.LocalFunction:
		return []labeledBlock{{"body", n.Body.Body}}
	case *ast.TypeFunction:
		return []labeledBlock{{"body", n.Body.Body}}
	}
	return nil
}

func stmtKind(s ast.Stmt) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", s), "*ast.")
}

func stmtSpan(s ast.Stmt) source.Span {
	first, last := ast.FirstToken(s), ast.LastToken(s)
	if first == nil || last == nil {
		return source.Span{}
	}
	return first.Span.Cover(last.Span)
}

// headline is the first source line of a statement, shortened for display.
func headline(f *source.File, sp source.Span) string {
	if f == nil || sp.Empty() {
		return ""
	}
	text := f.Slice(sp)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + " ..."
	}
	const limit = 48
	if len(text) > limit {
		text = text[:limit] + "..."
	}
	return text
}

func buildBlock(b *ast.Block, f *source.File) []CstNodeOutput {
	if b == nil {
		return nil
	}
	out := make([]CstNodeOutput, 0, len(b.Stmts))
	for _, e := range b.Stmts {
		sp := stmtSpan(e.Stmt)
		node := CstNodeOutput{
			Kind: stmtKind(e.Stmt),
			Span: sp,
			Text: headline(f, sp),
		}
		for _, lb := range stmtBlocks(e.Stmt) {
			node.Children = append(node.Children, CstNodeOutput{
				Kind:     lb.label,
				Children: buildBlock(lb.block, f),
			})
		}
		out = append(out, node)
	}
	return out
}

// BuildCstOutline returns the statement outline of a parsed file.
func BuildCstOutline(cst *ast.Cst, fs *source.FileSet) []CstNodeOutput {
	if cst == nil {
		return nil
	}
	var f *source.File
	if fs != nil {
		if id, ok := fs.GetLatest(cst.Path); ok {
			f = fs.Get(id)
		}
	}
	return buildBlock(cst.Block, f)
}

// FormatCstPretty prints the statement outline as a tree.
func FormatCstPretty(w io.Writer, cst *ast.Cst, fs *source.FileSet) error {
	nodes := BuildCstOutline(cst, fs)
	fmt.Fprintf(w, "File (%d statements)\n", len(nodes))
	return writeTree(w, nodes, fs, "")
}

func writeTree(w io.Writer, nodes []CstNodeOutput, fs *source.FileSet, prefix string) error {
	for i, n := range nodes {
		branch, indent := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, indent = "└─ ", "   "
		}
		line := n.Kind
		if !n.Span.Empty() && fs != nil {
			start, end := fs.Resolve(n.Span)
			line += fmt.Sprintf(" %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		}
		if n.Text != "" {
			line += fmt.Sprintf(" %q", n.Text)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, line); err != nil {
			return err
		}
		if err := writeTree(w, n.Children, fs, prefix+indent); err != nil {
			return err
		}
	}
	return nil
}

// FormatCstJSON writes the statement outline as JSON.
func FormatCstJSON(w io.Writer, cst *ast.Cst, fs *source.FileSet) error {
	nodes := BuildCstOutline(cst, fs)
	if nodes == nil {
		nodes = []CstNodeOutput{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodes)
}
