package parser

import (
	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/token"
)

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(precAdditive)
}

// parseBinaryExpr: precedence climbing поверх op_table.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return nil, false
	}

	for {
		opTok := p.peek()
		prec := binaryPrec(opTok.Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		p.advance()

		// все операторы левоассоциативны
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}

		op, _ := ast.BinaryOpFromToken(opTok.Kind)
		left = &ast.BinaryExpr{
			Op:     op,
			Left:   left,
			Right:  right,
			OpSpan: opTok.Span,
			Sp:     left.Span().Cover(right.Span()),
		}
	}
	return left, true
}

// factor := number | string | identifier | call | '(' expression ')'
func (p *Parser) parseFactor() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.NumberLit:
		p.advance()
		return &ast.NumberLit{Value: tok.Value, Form: tok.Form, Text: tok.Text, Sp: tok.Span}, true
	case token.StringLit:
		p.advance()
		return &ast.StringLit{Value: tok.Str, Sp: tok.Span}, true
	case token.Ident:
		p.advance()
		return &ast.Ident{Name: tok.Text, Sp: tok.Span}, true
	case token.KwRomaniza, token.KwArabiza:
		return p.parseCall()
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close '('")
		if !ok {
			return nil, false
		}
		return &ast.GroupExpr{Inner: inner, Sp: open.Span.Cover(closing.Span)}, true
	default:
		return nil, p.fail(diag.SynExpectExpression, "expression")
	}
}

// call := (ROMANIZA | ARABIZA) '(' expression ')'
func (p *Parser) parseCall() (ast.Expr, bool) {
	kw := p.advance()
	builtin, _ := ast.BuiltinFromToken(kw.Kind)
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "'(' after "+kw.Text); !ok {
		return nil, false
	}
	arg, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')' to close "+kw.Text)
	if !ok {
		return nil, false
	}
	return &ast.CallExpr{Builtin: builtin, Arg: arg, Sp: kw.Span.Cover(closing.Span)}, true
}
