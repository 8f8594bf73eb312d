// Package interp evaluates a parsed program statement by statement.
package interp

import (
	"fmt"
	"io"
	"strconv"

	"numerus/internal/ast"
	"numerus/internal/roman"
	"numerus/internal/source"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

type Options struct {
	Numerals NumeralStyle
	// Stdout, when set, receives every printed line as it is produced.
	Stdout io.Writer
}

// Interpreter owns one Environment for its whole lifetime.
type Interpreter struct {
	env  *Environment
	opts Options
	stmt source.Span
}

func New(opts Options) *Interpreter {
	return &Interpreter{env: NewEnvironment(), opts: opts}
}

// Env exposes the environment for inspection.
func (in *Interpreter) Env() *Environment { return in.env }

// Options returns the interpreter options.
func (in *Interpreter) Options() Options { return in.opts }

// Evaluate runs prog against env and returns the printed lines.
// On a runtime error the lines printed before the failure are returned with it.
func Evaluate(prog *ast.Program, env *Environment, opts Options) ([]string, error) {
	in := &Interpreter{env: env, opts: opts}
	return in.Run(prog)
}

// Run executes every statement in order, stopping at the first runtime error.
func (in *Interpreter) Run(prog *ast.Program) ([]string, error) {
	var out []string
	for _, stmt := range prog.Stmts {
		lines, err := in.Exec(stmt)
		out = append(out, lines...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// Exec executes a single statement.
func (in *Interpreter) Exec(stmt ast.Stmt) ([]string, error) {
	in.stmt = stmt.Span()
	switch s := stmt.(type) {
	case *ast.DeclStmt:
		v, err := in.eval(s.Init)
		if err != nil {
			return nil, err
		}
		if err := in.env.Declare(s.Name, v); err != nil {
			return nil, in.errorf(DuplicateDeclaration, s.NameSpan, "variable '%s' is already declared", s.Name)
		}
		return nil, nil
	case *ast.AssignStmt:
		v, err := in.eval(s.Value)
		if err != nil {
			return nil, err
		}
		if err := in.env.Assign(s.Name, v); err != nil {
			return nil, in.errorf(UndeclaredVariable, s.NameSpan, "variable '%s' is not declared; use DECLARA first", s.Name)
		}
		return nil, nil
	case *ast.PrintStmt:
		v, err := in.eval(s.Value)
		if err != nil {
			return nil, err
		}
		line := in.display(v)
		if in.opts.Stdout != nil {
			fmt.Fprintln(in.opts.Stdout, line)
		}
		return []string{line}, nil
	case *ast.NoOpStmt:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", stmt)
	}
}

func (in *Interpreter) errorf(kind ErrorKind, sp source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    sp,
		Stmt:    in.stmt,
	}
}

func (in *Interpreter) display(v Value) string {
	if v.Kind == KindString {
		return v.Str
	}
	return in.opts.Numerals.Format(v.Num)
}

func (in *Interpreter) eval(e ast.Expr) (Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return Number(n.Value), nil
	case *ast.StringLit:
		return String(n.Value), nil
	case *ast.Ident:
		v, err := in.env.Get(n.Name)
		if err != nil {
			return Value{}, in.errorf(UndeclaredVariable, n.Sp, "variable '%s' is not declared", n.Name)
		}
		return v, nil
	case *ast.GroupExpr:
		return in.eval(n.Inner)
	case *ast.BinaryExpr:
		return in.evalBinary(n)
	case *ast.CallExpr:
		return in.evalCall(n)
	default:
		return Value{}, fmt.Errorf("unsupported expression %T", e)
	}
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr) (Value, error) {
	l, err := in.eval(n.Left)
	if err != nil {
		return Value{}, err
	}
	r, err := in.eval(n.Right)
	if err != nil {
		return Value{}, err
	}

	if n.Op == ast.OpAdd && (!l.IsNumber() || !r.IsNumber()) {
		return String(norm.NFC.String(in.display(l) + in.display(r))), nil
	}
	if !l.IsNumber() || !r.IsNumber() {
		bad := n.Left
		if l.IsNumber() {
			bad = n.Right
		}
		return Value{}, in.errorf(TypeMismatch, bad.Span(), "%s requires numbers, got a string", n.Op)
	}

	var res int64
	switch n.Op {
	case ast.OpAdd:
		res = l.Num + r.Num
	case ast.OpSub:
		res = l.Num - r.Num
	case ast.OpMul:
		res = l.Num * r.Num
	case ast.OpDiv:
		if r.Num == 0 {
			return Value{}, in.errorf(DivisionByZero, n.Sp, "division by zero")
		}
		res = l.Num / r.Num
	}
	return in.checked(res, n.Sp)
}

// checked keeps numbers inside the int32 range. Operands are int32 values,
// so the int64 intermediate never overflows.
func (in *Interpreter) checked(n int64, sp source.Span) (Value, error) {
	if _, err := safecast.Conv[int32](n); err != nil {
		return Value{}, in.errorf(NumeralOutOfRange, sp, "result %d is outside the supported range", n)
	}
	return Number(n), nil
}

func (in *Interpreter) evalCall(n *ast.CallExpr) (Value, error) {
	arg, err := in.eval(n.Arg)
	if err != nil {
		return Value{}, err
	}
	if !arg.IsNumber() {
		return Value{}, in.errorf(TypeMismatch, n.Arg.Span(), "%s requires a number, got a string", n.Builtin)
	}
	switch n.Builtin {
	case ast.BuiltinRomaniza:
		s, err := roman.ToRoman(arg.Num)
		if err != nil {
			return Value{}, in.errorf(NumeralOutOfRange, n.Sp, "ROMANIZA: %v", err)
		}
		return String(s), nil
	default:
		return String(strconv.FormatInt(arg.Num, 10)), nil
	}
}
