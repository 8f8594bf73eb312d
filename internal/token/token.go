package token

import (
	"numerus/internal/source"
)

// NumeralForm records how a numeric literal was written.
type NumeralForm uint8

const (
	FormArabic NumeralForm = iota
	FormRoman
)

func (f NumeralForm) String() string {
	if f == FormRoman {
		return "roman"
	}
	return "arabic"
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia

	// Value is the resolved integer of a NumberLit.
	Value int64
	// Form is the written form of a NumberLit.
	Form NumeralForm
	// Str is the decoded contents of a StringLit.
	Str string
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == NumberLit || t.Kind == StringLit
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// EndsStatement reports whether the token may terminate a statement.
func (t Token) EndsStatement() bool {
	return t.Kind == Newline || t.Kind == EOF
}
