package lsp

import (
	"encoding/json"
	"fmt"
	"strings"

	"numerus/internal/ast"
	"numerus/internal/format"
	"numerus/internal/roman"
	"numerus/internal/token"
)

const (
	completionKindVariable = 6
	completionKindKeyword  = 14
)

var keywordDocs = map[token.Kind]string{
	token.KwDeclara:    "`DECLARA name EST value` declares a new variable.",
	token.KwEst:        "`name EST value` assigns to a declared variable.",
	token.KwScribe:     "`SCRIBE(value)` prints a value on its own line.",
	token.KwAvtem:      "`AVTEM` does nothing.",
	token.KwAddius:     "Addition, or concatenation when either side is a string.",
	token.KwSubtrahe:   "Subtraction.",
	token.KwMultiplica: "Multiplication.",
	token.KwDivide:     "Integer division; dividing by zero fails at run time.",
	token.KwRomaniza:   "`ROMANIZA(n)` returns the Roman spelling of n (1..3999) as a string.",
	token.KwArabiza:    "`ARABIZA(n)` returns the decimal spelling of n as a string.",
}

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	res := doc.result
	tok, ok := tokenAt(res.Tokens, fileOffset(res.File, params.Position))
	if !ok {
		return s.sendResponse(msg.ID, nil)
	}

	var text string
	switch {
	case tok.Kind == token.NumberLit:
		text = numberHover(tok, s.numerals(doc).Format(tok.Value))
	case tok.Kind == token.StringLit:
		text = fmt.Sprintf("string, %d characters", len([]rune(tok.Str)))
	case tok.Kind == token.Ident:
		text = s.identHover(doc, tok)
	case tok.IsKeyword():
		text = keywordDocs[tok.Kind]
	}
	if text == "" {
		return s.sendResponse(msg.ID, nil)
	}
	r := spanRange(res.File, tok.Span)
	return s.sendResponse(msg.ID, hover{
		Contents: markupContent{Kind: "markdown", Value: text},
		Range:    &r,
	})
}

func numberHover(tok token.Token, shown string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** = %d", tok.Text, tok.Value)
	if tok.Form == token.FormArabic {
		if r, err := roman.ToRoman(tok.Value); err == nil {
			fmt.Fprintf(&b, " = %s", r)
		} else {
			b.WriteString(" (no Roman spelling)")
		}
	}
	fmt.Fprintf(&b, "\n\nprinted as `%s`", shown)
	return b.String()
}

func (s *Server) identHover(doc *document, tok token.Token) string {
	decl := declarationOf(doc.result.Program, tok.Text)
	if decl == nil {
		return fmt.Sprintf("`%s` is not declared", tok.Text)
	}
	start, _ := doc.result.File.Resolve(decl.NameSpan)
	kind := "unknown"
	if doc.result.Sema != nil {
		if t, ok := doc.result.Sema.ExprTypes[decl.Init]; ok {
			kind = t.String()
		}
	}
	return fmt.Sprintf("variable `%s`: %s, declared on line %d", tok.Text, kind, start.Line)
}

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	res := doc.result
	tok, ok := tokenAt(res.Tokens, fileOffset(res.File, params.Position))
	if !ok || tok.Kind != token.Ident {
		return s.sendResponse(msg.ID, nil)
	}
	decl := declarationOf(res.Program, tok.Text)
	if decl == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{URI: doc.uri, Range: spanRange(res.File, decl.NameSpan)})
}

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	items := make([]completionItem, 0, 16)
	for _, kw := range token.Keywords() {
		items = append(items, completionItem{Label: kw, Kind: completionKindKeyword})
	}
	if doc := s.document(params.TextDocument.URI); doc != nil && doc.result != nil && doc.result.Program != nil {
		seen := make(map[string]bool)
		for _, st := range doc.result.Program.Stmts {
			decl, ok := st.(*ast.DeclStmt)
			if !ok || seen[decl.Name] {
				continue
			}
			seen[decl.Name] = true
			items = append(items, completionItem{Label: decl.Name, Kind: completionKindVariable, Detail: "variable"})
		}
	}
	return s.sendResponse(msg.ID, items)
}

func (s *Server) handleFormatting(msg *rpcMessage) error {
	var params documentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, -32602, "invalid params")
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.result == nil {
		return s.sendResponse(msg.ID, nil)
	}
	formatted, err := format.FormatFile(doc.result.File, format.Options{})
	if err != nil {
		// документ с ошибками не форматируем
		return s.sendResponse(msg.ID, nil)
	}
	if string(formatted) == doc.text {
		return s.sendResponse(msg.ID, []textEdit{})
	}
	return s.sendResponse(msg.ID, []textEdit{{
		Range:   lspRange{End: endPosition(doc.text)},
		NewText: string(formatted),
	}})
}
