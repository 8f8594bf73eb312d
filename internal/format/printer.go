package format

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"numerus/internal/ast"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/roman"
	"numerus/internal/source"
	"numerus/internal/token"
)

// ErrInvalidSource is returned for files that do not lex or parse.
var ErrInvalidSource = errors.New("format: source has errors")

// NumeralStyle selects how numeric literals are spelled in the output.
type NumeralStyle uint8

const (
	// NumeralsKeep leaves every literal as written.
	NumeralsKeep NumeralStyle = iota
	// NumeralsRoman rewrites decimal literals that have a Roman spelling of
	// two or more letters.
	NumeralsRoman
	// NumeralsArabic rewrites Roman literals in decimal.
	NumeralsArabic
)

// ParseNumeralStyle accepts keep, roman and arabic; empty means keep.
func ParseNumeralStyle(s string) (NumeralStyle, error) {
	switch strings.ToLower(s) {
	case "", "keep":
		return NumeralsKeep, nil
	case "roman":
		return NumeralsRoman, nil
	case "arabic":
		return NumeralsArabic, nil
	default:
		return NumeralsKeep, fmt.Errorf("unknown numeral style %q (expected keep|roman|arabic)", s)
	}
}

type Options struct {
	Numerals NumeralStyle
}

type printer struct {
	w    *Writer
	opt  Options
	prev token.Kind
}

// FormatFile returns the canonical layout of sf.
func FormatFile(sf *source.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	toks, err := lexer.Tokenize(sf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	if _, err := parser.Parse(toks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	p := printer{w: NewWriter(sf), opt: opt, prev: token.Newline}
	for _, tok := range toks {
		p.printToken(tok)
	}
	return p.w.Bytes(), nil
}

func (p *printer) printToken(tok token.Token) {
	for _, tr := range tok.Leading {
		if tr.Kind == token.TriviaComment {
			p.w.Space()
			p.w.WriteString(strings.TrimRight(tr.Text, " \t\r"))
		}
	}
	switch tok.Kind {
	case token.Newline, token.EOF:
		p.w.Newline()
	default:
		if needSpace(p.prev, tok.Kind) {
			p.w.Space()
		}
		p.w.WriteString(p.tokenText(tok))
	}
	p.prev = tok.Kind
}

func needSpace(prev, cur token.Kind) bool {
	switch {
	case prev == token.Newline || prev == token.LParen:
		return false
	case cur == token.RParen:
		return false
	case cur == token.LParen:
		return prev != token.KwScribe && prev != token.KwRomaniza && prev != token.KwArabiza
	default:
		return true
	}
}

func (p *printer) tokenText(tok token.Token) string {
	if tok.Kind != token.NumberLit {
		return tok.Text
	}
	switch {
	case p.opt.Numerals == NumeralsRoman && tok.Form == token.FormArabic:
		// одна буква лексится как идентификатор
		if r, err := roman.ToRoman(tok.Value); err == nil && len(r) >= 2 {
			return r
		}
	case p.opt.Numerals == NumeralsArabic && tok.Form == token.FormRoman:
		return strconv.FormatInt(tok.Value, 10)
	}
	return tok.Text
}

// CheckRoundTrip parses formatted as name and reports an error unless it
// describes the same program as orig.
func CheckRoundTrip(orig *source.File, name string, formatted []byte) error {
	before, err := shapeOf(orig)
	if err != nil {
		return err
	}
	fs := source.NewFileSet()
	after, err := shapeOf(fs.Get(fs.AddVirtual(name, formatted)))
	if err != nil {
		return fmt.Errorf("format: output does not parse: %w", err)
	}
	if before != after {
		return fmt.Errorf("format: output changes the program")
	}
	return nil
}

func shapeOf(sf *source.File) (string, error) {
	toks, err := lexer.Tokenize(sf)
	if err != nil {
		return "", err
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, st := range prog.Stmts {
		switch n := st.(type) {
		case *ast.DeclStmt:
			sb.WriteString("decl " + n.Name + " ")
			writeShape(&sb, n.Init)
		case *ast.AssignStmt:
			sb.WriteString("set " + n.Name + " ")
			writeShape(&sb, n.Value)
		case *ast.PrintStmt:
			sb.WriteString("print ")
			writeShape(&sb, n.Value)
		case *ast.NoOpStmt:
			sb.WriteString("noop")
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func writeShape(sb *strings.Builder, e ast.Expr) {
	switch n := e.(type) {
	case *ast.NumberLit:
		sb.WriteString(strconv.FormatInt(n.Value, 10))
	case *ast.StringLit:
		sb.WriteString(strconv.Quote(n.Value))
	case *ast.Ident:
		sb.WriteString(n.Name)
	case *ast.BinaryExpr:
		sb.WriteString("(" + n.Op.String() + " ")
		writeShape(sb, n.Left)
		sb.WriteByte(' ')
		writeShape(sb, n.Right)
		sb.WriteByte(')')
	case *ast.CallExpr:
		sb.WriteString(n.Builtin.String() + "[")
		writeShape(sb, n.Arg)
		sb.WriteByte(']')
	case *ast.GroupExpr:
		sb.WriteByte('{')
		writeShape(sb, n.Inner)
		sb.WriteByte('}')
	}
}
