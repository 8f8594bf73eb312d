package ast

import (
	"numerus/internal/source"
	"numerus/internal/token"
)

type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprString
	ExprIdent
	ExprBinary
	ExprCall
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprString:
		return "String"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprCall:
		return "Call"
	case ExprGroup:
		return "Group"
	default:
		return "Expr(?)"
	}
}

// Expr is implemented by every expression node.
type Expr interface {
	Kind() ExprKind
	Span() source.Span
}

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota // ADDIUS
	OpSub                 // SUBTRAHE
	OpMul                 // MULTIPLICA
	OpDiv                 // DIVIDE
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "ADDIUS"
	case OpSub:
		return "SUBTRAHE"
	case OpMul:
		return "MULTIPLICA"
	case OpDiv:
		return "DIVIDE"
	default:
		return "?"
	}
}

// BinaryOpFromToken maps an operator word to its BinaryOp.
func BinaryOpFromToken(k token.Kind) (BinaryOp, bool) {
	switch k {
	case token.KwAddius:
		return OpAdd, true
	case token.KwSubtrahe:
		return OpSub, true
	case token.KwMultiplica:
		return OpMul, true
	case token.KwDivide:
		return OpDiv, true
	default:
		return 0, false
	}
}

type Builtin uint8

const (
	BuiltinRomaniza Builtin = iota
	BuiltinArabiza
)

func (b Builtin) String() string {
	if b == BuiltinArabiza {
		return "ARABIZA"
	}
	return "ROMANIZA"
}

// BuiltinFromToken maps a builtin keyword to its Builtin.
func BuiltinFromToken(k token.Kind) (Builtin, bool) {
	switch k {
	case token.KwRomaniza:
		return BuiltinRomaniza, true
	case token.KwArabiza:
		return BuiltinArabiza, true
	default:
		return 0, false
	}
}

// NumberLit is an Arabic or Roman literal with its resolved value.
type NumberLit struct {
	Value int64
	Form  token.NumeralForm
	Text  string
	Sp    source.Span
}

// StringLit holds the decoded contents of a string literal.
type StringLit struct {
	Value string
	Sp    source.Span
}

type Ident struct {
	Name string
	Sp   source.Span
}

type BinaryExpr struct {
	Op          BinaryOp
	Left, Right Expr
	OpSpan      source.Span
	Sp          source.Span
}

type CallExpr struct {
	Builtin Builtin
	Arg     Expr
	Sp      source.Span
}

// GroupExpr is a parenthesised expression.
type GroupExpr struct {
	Inner Expr
	Sp    source.Span
}

func (*NumberLit) Kind() ExprKind  { return ExprNumber }
func (*StringLit) Kind() ExprKind  { return ExprString }
func (*Ident) Kind() ExprKind      { return ExprIdent }
func (*BinaryExpr) Kind() ExprKind { return ExprBinary }
func (*CallExpr) Kind() ExprKind   { return ExprCall }
func (*GroupExpr) Kind() ExprKind  { return ExprGroup }

func (e *NumberLit) Span() source.Span  { return e.Sp }
func (e *StringLit) Span() source.Span  { return e.Sp }
func (e *Ident) Span() source.Span      { return e.Sp }
func (e *BinaryExpr) Span() source.Span { return e.Sp }
func (e *CallExpr) Span() source.Span   { return e.Sp }
func (e *GroupExpr) Span() source.Span  { return e.Sp }

// Unparen strips any number of enclosing groups.
func Unparen(e Expr) Expr {
	for {
		g, ok := e.(*GroupExpr)
		if !ok {
			return e
		}
		e = g.Inner
	}
}
