package parser

import (
	"numerus/internal/diag"
	"numerus/internal/source"
	"numerus/internal/token"
)

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance: съедает следующий токен и обновляет lastSpan. EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan: span для ошибки на текущем токене.
// Для конца строки и EOF используем точку перед ним, чтобы не захватывать следующую строку.
func (p *Parser) diagnosticSpan(tok token.Token) source.Span {
	if tok.EndsStatement() {
		return tok.Span.StartPoint()
	}
	return tok.Span
}

// expect: ожидаем конкретный токен; иначе фиксируем ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, expected string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, p.fail(code, expected)
}

// fail records a syntax error at the current token and always returns false.
func (p *Parser) fail(code diag.Code, expected string) bool {
	if p.failure == nil {
		tok := p.peek()
		p.failure = &SyntaxError{
			Code:     code,
			Span:     p.diagnosticSpan(tok),
			Expected: expected,
			Found:    tok,
		}
	}
	return false
}
