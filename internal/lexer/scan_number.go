package lexer

import (
	"fmt"
	"math"

	"numerus/internal/diag"
	"numerus/internal/token"
)

// MaxArabicLiteral is the largest decimal literal the language accepts.
const MaxArabicLiteral = math.MaxInt32

// scanNumber сканирует десятичный литерал [0-9]+.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	var value int64
	overflow := false
	for isDec(lx.cursor.Peek()) {
		d := int64(lx.cursor.Bump() - '0')
		if !overflow {
			value = value*10 + d
			if value > MaxArabicLiteral {
				overflow = true
			}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if overflow {
		lx.errLex(diag.LexNumberOutOfRange, sp, fmt.Sprintf("number %s is larger than %d", text, MaxArabicLiteral))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: text, Value: value, Form: token.FormArabic}
}
