package parser

import (
	"fmt"
	"strings"
	"testing"

	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/lexer"
	"numerus/internal/source"
	"numerus/internal/token"
)

func lexSource(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.npp", []byte(src)))
	toks, err := lexer.Tokenize(file)
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	return toks, fs
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, _ := lexSource(t, src)
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

// recoverSource lexes with recovery and parses with recovery into one bag.
func recoverSource(src string) (*ast.Program, *diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.npp", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(file, lexer.Options{Reporter: rep}).All()
	prog := ParseRecover(toks, rep)
	bag.Sort()
	return prog, bag, fs
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// sexpr renders an expression as a compact prefix form for assertions.
func sexpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.NumberLit:
		return fmt.Sprint(n.Value)
	case *ast.StringLit:
		return fmt.Sprintf("%q", n.Value)
	case *ast.Ident:
		return n.Name
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", n.Op, sexpr(n.Left), sexpr(n.Right))
	case *ast.CallExpr:
		return fmt.Sprintf("%s[%s]", n.Builtin, sexpr(n.Arg))
	case *ast.GroupExpr:
		return "{" + sexpr(n.Inner) + "}"
	default:
		return "?"
	}
}
