package parser

import (
	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/source"
	"numerus/internal/token"
)

// Parser: состояние парсера на один поток токенов
type Parser struct {
	toks     []token.Token
	pos      int
	lastSpan source.Span  // span последнего съеденного токена
	failure  *SyntaxError // первая ошибка текущего оператора
}

func newParser(toks []token.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		var sp source.Span
		if len(toks) > 0 {
			last := toks[len(toks)-1].Span
			sp = source.Span{File: last.File, Start: last.End, End: last.End}
		}
		toks = append(toks[:len(toks):len(toks)], token.Token{Kind: token.EOF, Span: sp})
	}
	return &Parser{toks: toks}
}

// Parse builds a program and stops at the first syntax error.
func Parse(toks []token.Token) (*ast.Program, error) {
	p := newParser(toks)
	prog := p.newProgram()
	for {
		p.skipNewlines()
		if p.at(token.EOF) {
			return prog, nil
		}
		stmt, ok := p.parseStatement()
		if !ok {
			return nil, p.failure
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
}

// ParseRecover parses every statement it can. Each syntax error is reported
// and parsing resumes after the next newline. Errors found at an Invalid
// token are not reported: the lexer already did.
func ParseRecover(toks []token.Token, reporter diag.Reporter) *ast.Program {
	p := newParser(toks)
	prog := p.newProgram()
	for {
		p.skipNewlines()
		if p.at(token.EOF) {
			return prog
		}
		stmt, ok := p.parseStatement()
		if ok {
			prog.Stmts = append(prog.Stmts, stmt)
			continue
		}
		if p.failure.Found.Kind != token.Invalid {
			diag.Emit(reporter, p.failure.Diagnostic())
		}
		p.failure = nil
		p.resyncStatement()
	}
}

func (p *Parser) newProgram() *ast.Program {
	return &ast.Program{File: p.toks[0].Span.File}
}

// resyncStatement: прокручиваем до конца строки (включительно) или до EOF.
func (p *Parser) resyncStatement() {
	for !p.at(token.EOF) {
		if p.advance().Kind == token.Newline {
			return
		}
	}
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}
