package lexer

import (
	"errors"
	"fmt"

	"numerus/internal/diag"
	"numerus/internal/fix"
	"numerus/internal/roman"
	"numerus/internal/token"
)

const romanNameNote = "names made only of I V X L C D M are read as numerals; add another letter to use it as a variable"

// scanWord сканирует ключевые слова, идентификаторы и римские литералы.
// Одиночные буквы (I, V, X, ...) остаются идентификаторами.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	for isWordContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}

	if len(text) < 2 || !roman.IsRomanSymbols(text) {
		return token.Token{Kind: token.Ident, Span: sp, Text: text}
	}

	value, err := roman.FromRoman(text)
	if err != nil {
		rb := diag.ReportError(lx.opts.Reporter, diag.LexInvalidNumeral, sp, err.Error())
		var numErr *roman.NumeralError
		if errors.As(err, &numErr) && numErr.Reason == roman.ReasonNonCanonical && numErr.Canonical != "" {
			rb.AddFix(fix.ReplaceSpan(fmt.Sprintf("write %s", numErr.Canonical), sp, numErr.Canonical))
		} else {
			rb.WithNote(sp, romanNameNote)
		}
		rb.Emit()
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.NumberLit, Span: sp, Text: text, Value: value, Form: token.FormRoman}
}

// scanUnknown consumes one rune that starts no token.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", r))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
