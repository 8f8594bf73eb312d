package sema

import (
	"fmt"
	"math"

	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/roman"
)

func (c *checker) expr(e ast.Expr) Type {
	t := c.exprType(e)
	c.result.ExprTypes[e] = t
	return t
}

func (c *checker) exprType(e ast.Expr) Type {
	switch n := e.(type) {
	case *ast.NumberLit:
		return TypeNumber
	case *ast.StringLit:
		return TypeString
	case *ast.Ident:
		b, ok := c.vars[n.Name]
		if !ok {
			diag.ReportWarning(c.reporter, diag.SemaUndeclared, n.Sp,
				"use of undeclared variable '"+n.Name+"'").Emit()
			return TypeUnknown
		}
		b.used = true
		return b.typ
	case *ast.GroupExpr:
		return c.expr(n.Inner)
	case *ast.BinaryExpr:
		return c.binary(n)
	case *ast.CallExpr:
		return c.call(n)
	default:
		return TypeUnknown
	}
}

func (c *checker) binary(n *ast.BinaryExpr) Type {
	lt := c.expr(n.Left)
	rt := c.expr(n.Right)

	if n.Op == ast.OpAdd {
		switch {
		case lt == TypeString || rt == TypeString:
			return TypeString
		case lt == TypeNumber && rt == TypeNumber:
			return TypeNumber
		default:
			return TypeUnknown
		}
	}

	if lt == TypeString {
		c.mismatch(n.Left, n.Op.String())
	}
	if rt == TypeString {
		c.mismatch(n.Right, n.Op.String())
	}
	if n.Op == ast.OpDiv {
		if v, ok := constValue(n.Right); ok && v == 0 {
			diag.ReportWarning(c.reporter, diag.SemaDivisionByZero, n.Right.Span(),
				"division by zero; this will fail at run time").Emit()
		}
	}
	return TypeNumber
}

func (c *checker) call(n *ast.CallExpr) Type {
	if c.expr(n.Arg) == TypeString {
		c.mismatch(n.Arg, n.Builtin.String())
	}
	if n.Builtin == ast.BuiltinRomaniza {
		if v, ok := constValue(n.Arg); ok && (v < roman.Min || v > roman.Max) {
			diag.ReportWarning(c.reporter, diag.SemaRomanRange, n.Arg.Span(),
				fmt.Sprintf("%d has no roman form (valid range is %d..%d)", v, roman.Min, roman.Max)).Emit()
		}
	}
	return TypeString
}

func (c *checker) mismatch(e ast.Expr, op string) {
	diag.ReportWarning(c.reporter, diag.SemaTypeMismatch, e.Span(),
		op+" expects a number but this operand is a string").Emit()
}

// constValue folds literal arithmetic. Division by zero and overflow are not folded.
func constValue(e ast.Expr) (int64, bool) {
	switch n := ast.Unparen(e).(type) {
	case *ast.NumberLit:
		return n.Value, true
	case *ast.BinaryExpr:
		l, ok := constValue(n.Left)
		if !ok {
			return 0, false
		}
		r, ok := constValue(n.Right)
		if !ok {
			return 0, false
		}
		var v int64
		switch n.Op {
		case ast.OpAdd:
			v = l + r
		case ast.OpSub:
			v = l - r
		case ast.OpMul:
			v = l * r
		case ast.OpDiv:
			if r == 0 {
				return 0, false
			}
			v = l / r
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}
