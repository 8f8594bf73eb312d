package parser

import (
	"fmt"

	"numerus/internal/diag"
	"numerus/internal/source"
	"numerus/internal/token"
)

// SyntaxError describes the first grammar mismatch of a statement.
type SyntaxError struct {
	Code     diag.Code
	Span     source.Span
	Expected string
	Found    token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, describeToken(e.Found))
}

// Diagnostic converts the error for rendering.
func (e *SyntaxError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Error())
}

func describeToken(tok token.Token) string {
	switch tok.Kind {
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	case token.NumberLit:
		return fmt.Sprintf("number %s", tok.Text)
	case token.StringLit:
		return fmt.Sprintf("string %s", tok.Text)
	case token.Invalid:
		return fmt.Sprintf("invalid token %q", tok.Text)
	default:
		return tok.Kind.Describe()
	}
}
