package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a statement.
	Newline

	// Ident represents an identifier token.
	Ident
	// NumberLit is an Arabic or Roman numeric literal.
	NumberLit
	// StringLit is a double-quoted string literal.
	StringLit

	// KwDeclara introduces a declaration.
	KwDeclara // DECLARA
	// KwEst binds a value in declarations and assignments.
	KwEst // EST
	// KwScribe is the print statement.
	KwScribe // SCRIBE
	// KwAvtem is the no-op statement.
	KwAvtem // AVTEM
	// KwAddius is addition or concatenation.
	KwAddius // ADDIUS
	// KwSubtrahe is subtraction.
	KwSubtrahe // SUBTRAHE
	// KwMultiplica is multiplication.
	KwMultiplica // MULTIPLICA
	// KwDivide is integer division.
	KwDivide // DIVIDE
	// KwRomaniza converts a number to its Roman string.
	KwRomaniza // ROMANIZA
	// KwArabiza converts a number to its decimal string.
	KwArabiza // ARABIZA

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
)

var kindNames = [...]string{
	Invalid:      "Invalid",
	EOF:          "EOF",
	Newline:      "Newline",
	Ident:        "Ident",
	NumberLit:    "NumberLit",
	StringLit:    "StringLit",
	KwDeclara:    "KwDeclara",
	KwEst:        "KwEst",
	KwScribe:     "KwScribe",
	KwAvtem:      "KwAvtem",
	KwAddius:     "KwAddius",
	KwSubtrahe:   "KwSubtrahe",
	KwMultiplica: "KwMultiplica",
	KwDivide:     "KwDivide",
	KwRomaniza:   "KwRomaniza",
	KwArabiza:    "KwArabiza",
	LParen:       "LParen",
	RParen:       "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the form used in diagnostics: the lexeme for fixed
// tokens and a category name for everything else.
func (k Kind) Describe() string {
	if kw, ok := keywordText[k]; ok {
		return kw
	}
	switch k {
	case EOF:
		return "end of input"
	case Newline:
		return "end of line"
	case Ident:
		return "identifier"
	case NumberLit:
		return "number"
	case StringLit:
		return "string"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	default:
		return "invalid token"
	}
}

// IsKeyword reports whether the kind is a language keyword.
func (k Kind) IsKeyword() bool {
	return k >= KwDeclara && k <= KwArabiza
}

// IsBinaryOperator reports whether the kind is one of the four operator words.
func (k Kind) IsBinaryOperator() bool {
	switch k {
	case KwAddius, KwSubtrahe, KwMultiplica, KwDivide:
		return true
	default:
		return false
	}
}

// IsBuiltin reports whether the kind names a conversion builtin.
func (k Kind) IsBuiltin() bool {
	return k == KwRomaniza || k == KwArabiza
}
