package parser

import (
	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/token"
)

// parseStatement выбирает распознаватель по первому токену.
func (p *Parser) parseStatement() (ast.Stmt, bool) {
	var (
		stmt ast.Stmt
		ok   bool
	)
	switch p.peek().Kind {
	case token.KwDeclara:
		stmt, ok = p.parseDeclaration()
	case token.Ident:
		stmt, ok = p.parseAssignment()
	case token.KwScribe:
		stmt, ok = p.parsePrint()
	case token.KwAvtem:
		tok := p.advance()
		stmt, ok = &ast.NoOpStmt{Sp: tok.Span}, true
	default:
		return nil, p.fail(diag.SynUnexpectedToken, "statement")
	}
	if !ok {
		return nil, false
	}
	if !p.peek().EndsStatement() {
		return nil, p.fail(diag.SynExpectNewline, "end of line after statement")
	}
	return stmt, true
}

// DECLARA name EST expr
func (p *Parser) parseDeclaration() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier after DECLARA")
	if !ok {
		return nil, false
	}
	if _, ok = p.expect(token.KwEst, diag.SynExpectEst, "EST after variable name"); !ok {
		return nil, false
	}
	init, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.DeclStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Init:     init,
		Sp:       kw.Span.Cover(init.Span()),
	}, true
}

// name EST expr
func (p *Parser) parseAssignment() (ast.Stmt, bool) {
	name := p.advance()
	if _, ok := p.expect(token.KwEst, diag.SynExpectEst, "EST after identifier"); !ok {
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.AssignStmt{
		Name:     name.Text,
		NameSpan: name.Span,
		Value:    value,
		Sp:       name.Span.Cover(value.Span()),
	}, true
}

// SCRIBE(expr)
func (p *Parser) parsePrint() (ast.Stmt, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "'(' after SCRIBE"); !ok {
		return nil, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close SCRIBE")
	if !ok {
		return nil, false
	}
	return &ast.PrintStmt{Value: value, Sp: kw.Span.Cover(closing.Span)}, true
}
