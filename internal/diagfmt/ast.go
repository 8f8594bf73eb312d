package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"numerus/internal/ast"
	"numerus/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty prints the program as an indented tree using ├─ and └─ connectors.
func FormatASTPretty(w io.Writer, prog *ast.Program, fs *source.FileSet) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	header := "Program"
	if fs != nil && fs.Len() > int(prog.File) {
		header = fs.Get(prog.File).Path
	}
	root := &treeNode{label: fmt.Sprintf("%s (%d statements)", header, len(prog.Stmts))}
	for i, stmt := range prog.Stmts {
		root.children = append(root.children, stmtTreeNode(stmt, fs, i))
	}
	fmt.Fprintln(w, root.label) //nolint:errcheck
	for i, child := range root.children {
		writeTree(w, child, "", i == len(root.children)-1)
	}
	return nil
}

func writeTree(w io.Writer, n *treeNode, prefix string, last bool) {
	connector, next := "├─ ", "│  "
	if last {
		connector, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s\n", prefix, connector, n.label) //nolint:errcheck
	for i, child := range n.children {
		writeTree(w, child, prefix+next, i == len(n.children)-1)
	}
}

func stmtTreeNode(s ast.Stmt, fs *source.FileSet, idx int) *treeNode {
	node := &treeNode{label: fmt.Sprintf("Stmt[%d]: %s (span: %s)", idx, s.Kind(), formatSpan(s.Span(), fs))}
	switch n := s.(type) {
	case *ast.DeclStmt:
		node.children = append(node.children,
			&treeNode{label: "Name: " + n.Name},
			labelled("Init", exprTreeNode(n.Init, fs)))
	case *ast.AssignStmt:
		node.children = append(node.children,
			&treeNode{label: "Name: " + n.Name},
			labelled("Value", exprTreeNode(n.Value, fs)))
	case *ast.PrintStmt:
		node.children = append(node.children, exprTreeNode(n.Value, fs))
	}
	return node
}

func labelled(label string, child *treeNode) *treeNode {
	child.label = label + ": " + child.label
	return child
}

func exprTreeNode(e ast.Expr, fs *source.FileSet) *treeNode {
	if e == nil {
		return &treeNode{label: "<nil>"}
	}
	span := formatSpan(e.Span(), fs)
	switch n := e.(type) {
	case *ast.NumberLit:
		return &treeNode{label: fmt.Sprintf("Number %d [%s %s] (span: %s)", n.Value, n.Form, n.Text, span)}
	case *ast.StringLit:
		return &treeNode{label: fmt.Sprintf("String %s (span: %s)", strconv.Quote(n.Value), span)}
	case *ast.Ident:
		return &treeNode{label: fmt.Sprintf("Ident %s (span: %s)", n.Name, span)}
	case *ast.BinaryExpr:
		return &treeNode{
			label:    fmt.Sprintf("Binary %s (span: %s)", n.Op, span),
			children: []*treeNode{exprTreeNode(n.Left, fs), exprTreeNode(n.Right, fs)},
		}
	case *ast.CallExpr:
		return &treeNode{
			label:    fmt.Sprintf("Call %s (span: %s)", n.Builtin, span),
			children: []*treeNode{exprTreeNode(n.Arg, fs)},
		}
	case *ast.GroupExpr:
		return &treeNode{
			label:    fmt.Sprintf("Group (span: %s)", span),
			children: []*treeNode{exprTreeNode(n.Inner, fs)},
		}
	default:
		return &treeNode{label: fmt.Sprintf("%T", e)}
	}
}

// FormatASTJSON writes the program as a nested JSON node tree.
func FormatASTJSON(w io.Writer, prog *ast.Program) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	children := make([]ASTNodeOutput, 0, len(prog.Stmts))
	var span source.Span
	for i, stmt := range prog.Stmts {
		if i == 0 {
			span = stmt.Span()
		} else {
			span = span.Cover(stmt.Span())
		}
		children = append(children, stmtJSON(stmt))
	}
	output := ASTNodeOutput{
		Type:     "Program",
		Span:     span,
		Children: children,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func stmtJSON(s ast.Stmt) ASTNodeOutput {
	out := ASTNodeOutput{Type: "Stmt", Kind: s.Kind().String(), Span: s.Span()}
	switch n := s.(type) {
	case *ast.DeclStmt:
		out.Fields = map[string]any{"name": n.Name}
		out.Children = []ASTNodeOutput{exprJSON(n.Init)}
	case *ast.AssignStmt:
		out.Fields = map[string]any{"name": n.Name}
		out.Children = []ASTNodeOutput{exprJSON(n.Value)}
	case *ast.PrintStmt:
		out.Children = []ASTNodeOutput{exprJSON(n.Value)}
	}
	return out
}

func exprJSON(e ast.Expr) ASTNodeOutput {
	out := ASTNodeOutput{Type: "Expr", Kind: e.Kind().String(), Span: e.Span()}
	switch n := e.(type) {
	case *ast.NumberLit:
		out.Text = n.Text
		out.Fields = map[string]any{"value": n.Value, "form": n.Form.String()}
	case *ast.StringLit:
		out.Fields = map[string]any{"value": n.Value}
	case *ast.Ident:
		out.Text = n.Name
	case *ast.BinaryExpr:
		out.Text = n.Op.String()
		out.Children = []ASTNodeOutput{exprJSON(n.Left), exprJSON(n.Right)}
	case *ast.CallExpr:
		out.Text = n.Builtin.String()
		out.Children = []ASTNodeOutput{exprJSON(n.Arg)}
	case *ast.GroupExpr:
		out.Children = []ASTNodeOutput{exprJSON(n.Inner)}
	}
	return out
}
