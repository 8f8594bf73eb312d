package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadEscape          Code = 1003
	LexInvalidNumeral     Code = 1004
	LexNumberOutOfRange   Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectExpression Code = 2004
	SynExpectEst        Code = 2005
	SynExpectLParen     Code = 2006
	SynExpectNewline    Code = 2007

	// Семантические (только предупреждения, программа не исполняется)
	SemaInfo           Code = 3000
	SemaUndeclared     Code = 3001
	SemaDuplicateDecl  Code = 3002
	SemaDivisionByZero Code = 3003
	SemaTypeMismatch   Code = 3004
	SemaRomanRange     Code = 3005
	SemaUnusedVariable Code = 3006

	IOLoadFileError Code = 4001

	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjMainMissing     Code = 5002

	// Ошибки исполнения
	RunInfo                 Code = 6000
	RunUndeclaredVariable   Code = 6001
	RunDuplicateDeclaration Code = 6002
	RunDivisionByZero       Code = 6003
	RunTypeMismatch         Code = 6004
	RunNumeralOutOfRange    Code = 6005
)

var codeDescription = map[Code]string{
	UnknownCode:             "Unknown error",
	LexInfo:                 "Lexical information",
	LexUnknownChar:          "Unexpected character",
	LexUnterminatedString:   "Unterminated string literal",
	LexBadEscape:            "Unknown escape sequence",
	LexInvalidNumeral:       "Invalid roman numeral",
	LexNumberOutOfRange:     "Number literal out of range",
	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectExpression:     "Expected expression",
	SynExpectEst:            "Expected EST",
	SynExpectLParen:         "Expected '('",
	SynExpectNewline:        "Expected end of statement",
	SemaInfo:                "Semantic information",
	SemaUndeclared:          "Use of undeclared variable",
	SemaDuplicateDecl:       "Duplicate declaration",
	SemaDivisionByZero:      "Division by constant zero",
	SemaTypeMismatch:        "Operand type mismatch",
	SemaRomanRange:          "Value has no roman form",
	SemaUnusedVariable:      "Variable is never read",
	IOLoadFileError:         "I/O error while loading file",
	ProjInfo:                "Project information",
	ProjManifestInvalid:     "Invalid numerus.toml",
	ProjMainMissing:         "Entry file is not set",
	RunInfo:                 "Runtime information",
	RunUndeclaredVariable:   "Undeclared variable",
	RunDuplicateDeclaration: "Duplicate declaration",
	RunDivisionByZero:       "Division by zero",
	RunTypeMismatch:         "Type mismatch",
	RunNumeralOutOfRange:    "Numeral out of range",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RUN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
