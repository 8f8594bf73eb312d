// Package sema is a non-executing pass over a syntactically valid program.
// It only emits warnings and infos: a program that passes the parser is
// always handed to the evaluator unchanged.
package sema

import (
	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/fix"
	"numerus/internal/source"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	// ReportUnused emits an info for variables that are declared but never read.
	ReportUnused bool
}

// Result stores semantic artefacts produced by the checker.
type Result struct {
	// Declared lists variables in declaration order.
	Declared []string
	// ExprTypes holds the static type of every expression that was visited.
	ExprTypes map[ast.Expr]Type
}

type binding struct {
	decl source.Span
	typ  Type
	used bool
}

type checker struct {
	reporter diag.Reporter
	opts     Options
	vars     map[string]*binding
	result   *Result
}

// Check walks the program in execution order.
func Check(prog *ast.Program, opts Options) Result {
	res := Result{ExprTypes: make(map[ast.Expr]Type)}
	if prog == nil {
		return res
	}
	c := checker{
		reporter: opts.Reporter,
		opts:     opts,
		vars:     make(map[string]*binding),
		result:   &res,
	}
	for _, stmt := range prog.Stmts {
		c.stmt(stmt)
	}
	if opts.ReportUnused {
		c.reportUnused()
	}
	return res
}

func (c *checker) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.DeclStmt:
		t := c.expr(n.Init)
		if prev, ok := c.vars[n.Name]; ok {
			if b := diag.ReportWarning(c.reporter, diag.SemaDuplicateDecl, n.NameSpan,
				"variable '"+n.Name+"' is already declared; this will fail at run time"); b != nil {
				b.WithNote(prev.decl, "previous declaration is here")
				b.AddFix(fix.DeleteSpan("assign instead of declaring again",
					source.Span{File: n.Sp.File, Start: n.Sp.Start, End: n.NameSpan.Start}))
				b.Emit()
			}
			return
		}
		c.vars[n.Name] = &binding{decl: n.NameSpan, typ: t}
		c.result.Declared = append(c.result.Declared, n.Name)
	case *ast.AssignStmt:
		t := c.expr(n.Value)
		b, ok := c.vars[n.Name]
		if !ok {
			diag.ReportWarning(c.reporter, diag.SemaUndeclared, n.NameSpan,
				"assignment to undeclared variable '"+n.Name+"'; declare it with DECLARA").
				AddFix(fix.InsertText("declare '"+n.Name+"'", n.NameSpan, "DECLARA ")).
				Emit()
			return
		}
		b.typ = t
	case *ast.PrintStmt:
		c.expr(n.Value)
	}
}

func (c *checker) reportUnused() {
	for _, name := range c.result.Declared {
		b := c.vars[name]
		if !b.used {
			diag.ReportInfo(c.reporter, diag.SemaUnusedVariable, b.decl,
				"variable '"+name+"' is never read").Emit()
		}
	}
}
