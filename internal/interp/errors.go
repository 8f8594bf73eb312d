package interp

import (
	"fmt"

	"numerus/internal/diag"
	"numerus/internal/source"
)

// ErrorKind classifies runtime failures.
type ErrorKind uint8

const (
	UndeclaredVariable ErrorKind = iota
	DuplicateDeclaration
	DivisionByZero
	TypeMismatch
	NumeralOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case DuplicateDeclaration:
		return "DuplicateDeclaration"
	case DivisionByZero:
		return "DivisionByZero"
	case TypeMismatch:
		return "TypeMismatch"
	case NumeralOutOfRange:
		return "NumeralOutOfRange"
	default:
		return "RuntimeError"
	}
}

// Code returns the stable diagnostic code of the kind.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UndeclaredVariable:
		return diag.RunUndeclaredVariable
	case DuplicateDeclaration:
		return diag.RunDuplicateDeclaration
	case DivisionByZero:
		return diag.RunDivisionByZero
	case TypeMismatch:
		return diag.RunTypeMismatch
	case NumeralOutOfRange:
		return diag.RunNumeralOutOfRange
	default:
		return diag.RunInfo
	}
}

// RuntimeError aborts evaluation of the remaining program.
type RuntimeError struct {
	Kind    ErrorKind
	Message string
	Span    source.Span // failing expression or name
	Stmt    source.Span // enclosing statement
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Diagnostic converts the error for rendering.
func (e *RuntimeError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Kind.Code(), e.Span, e.Message)
	if e.Stmt != e.Span && !e.Stmt.Empty() {
		d = d.WithNote(e.Stmt, "in this statement")
	}
	return d
}
