package lexer

import (
	"fmt"
	"strings"

	"numerus/internal/diag"
	"numerus/internal/source"
	"numerus/internal/token"

	"golang.org/x/text/unicode/norm"
)

// scanString сканирует "..." с escape \" \\ \n \t \r.
// Значение нормализуется в NFC; перевод строки внутри литерала запрещён.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var sb strings.Builder
	badEscape := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			tok := token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Str: norm.NFC.String(sb.String())}
			if badEscape {
				tok.Kind = token.Invalid
			}
			return tok
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			if r, ok := unescape(lx.cursor.Peek()); ok {
				lx.cursor.Bump()
				sb.WriteByte(r)
				continue
			}
			if lx.cursor.Peek() == '\n' {
				continue
			}
			lx.bumpRune()
			sp := lx.cursor.SpanFrom(escStart)
			lx.reportBadEscape(sp)
			badEscape = true
		default:
			r, _ := lx.peekRune()
			lx.bumpRune()
			sb.WriteRune(r)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func unescape(b byte) (byte, bool) {
	switch b {
	case '"':
		return '"', true
	case '\\':
		return '\\', true
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	default:
		return 0, false
	}
}

func (lx *Lexer) reportBadEscape(sp source.Span) {
	lx.errLex(diag.LexBadEscape, sp, fmt.Sprintf("unknown escape sequence %s", lx.text(sp)))
}
