// Package testkit holds helpers shared by package tests: span invariants
// over parsed programs and YAML scenario fixtures.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"numerus/internal/ast"
	"numerus/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every statement span is non-empty and within file content bounds
// 2) statement spans are ordered and do not overlap
// 3) every expression span is non-empty and contained in its statement span
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, stmt := range prog.Stmts {
		sp := stmt.Span()
		if sp.File != sf.ID {
			return fmt.Errorf("stmt %d points to different file id: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End <= sp.Start {
			return fmt.Errorf("stmt %d has empty span: %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("stmt %d span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("stmt %d overlaps previous statement: %v", i, sp)
		}
		prevEnd = sp.End

		var exprErr error
		ast.WalkExpr(ast.StmtExpr(stmt), func(e ast.Expr) bool {
			es := e.Span()
			switch {
			case es.End <= es.Start:
				exprErr = fmt.Errorf("stmt %d: empty %s span %v", i, e.Kind(), es)
			case es.Start < sp.Start || es.End > sp.End:
				exprErr = fmt.Errorf("stmt %d: %s span %v escapes statement %v", i, e.Kind(), es, sp)
			}
			return exprErr == nil
		})
		if exprErr != nil {
			return exprErr
		}
	}
	return nil
}
