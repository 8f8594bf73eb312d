package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"numerus/internal/lexer"
	"numerus/internal/source"
	"numerus/internal/token"
)

type session struct {
	responses map[string]rpcMessage
	publishes map[string][]publishDiagnosticsParams
}

// runSession прогоняет сообщения через сервер и раскладывает ответы по id/uri
func runSession(t *testing.T, msgs ...map[string]any) session {
	t.Helper()
	var in bytes.Buffer
	for _, m := range msgs {
		m["jsonrpc"] = "2.0"
		if err := writeJSON(&in, m); err != nil {
			t.Fatalf("frame: %v", err)
		}
	}
	var out bytes.Buffer
	srv := NewServer(&in, &out, ServerOptions{Log: io.Discard})
	if err := srv.Run(context.Background()); err != nil && !errors.Is(err, ErrExit) {
		t.Fatalf("Run: %v", err)
	}

	sess := session{responses: map[string]rpcMessage{}, publishes: map[string][]publishDiagnosticsParams{}}
	reader := bufio.NewReader(&out)
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if msg.Method == "textDocument/publishDiagnostics" {
			var params publishDiagnosticsParams
			if err := json.Unmarshal(msg.Params, &params); err != nil {
				t.Fatalf("decode publish: %v", err)
			}
			sess.publishes[params.URI] = append(sess.publishes[params.URI], params)
			continue
		}
		sess.responses[string(msg.ID)] = msg
	}
	return sess
}

func request(id int, method string, params any) map[string]any {
	return map[string]any{"id": id, "method": method, "params": params}
}

func notify(method string, params any) map[string]any {
	return map[string]any{"method": method, "params": params}
}

func docPos(uri string, line, char int) textDocumentPositionParams {
	return textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: line, Character: char},
	}
}

func decodeResult(t *testing.T, msg rpcMessage, v any) {
	t.Helper()
	if msg.Error != nil {
		t.Fatalf("unexpected error response: %+v", msg.Error)
	}
	if err := json.Unmarshal(msg.Result, v); err != nil {
		t.Fatalf("decode result %s: %v", msg.Result, err)
	}
}

func TestServerSession(t *testing.T) {
	dir := t.TempDir()
	mainURI := pathToURI(filepath.Join(dir, "main.npp"))
	messyURI := pathToURI(filepath.Join(dir, "messy.npp"))

	sess := runSession(t,
		request(1, "initialize", initializeParams{RootURI: pathToURI(dir)}),
		notify("initialized", map[string]any{}),
		notify("textDocument/didOpen", didOpenTextDocumentParams{TextDocument: textDocumentItem{
			URI: mainURI, Version: 1, Text: "DECLARA x EST XL\nSCRIBE(x ADDIUS y)\n",
		}}),
		notify("textDocument/didOpen", didOpenTextDocumentParams{TextDocument: textDocumentItem{
			URI: messyURI, Version: 1, Text: "SCRIBE( XL )",
		}}),
		request(2, "textDocument/hover", docPos(mainURI, 0, 15)),
		request(3, "textDocument/definition", docPos(mainURI, 1, 7)),
		request(4, "textDocument/completion", docPos(mainURI, 1, 0)),
		notify("textDocument/didChange", didChangeTextDocumentParams{
			TextDocument: versionedTextDocumentIdentifier{URI: mainURI, Version: 2},
			ContentChanges: []textDocumentContentChangeEvent{{
				Range: &lspRange{Start: position{Line: 1, Character: 16}, End: position{Line: 1, Character: 17}},
				Text:  "x",
			}},
		}),
		request(5, "textDocument/formatting", documentFormattingParams{TextDocument: textDocumentIdentifier{URI: messyURI}}),
		request(6, "textDocument/foldingRange", docPos(mainURI, 0, 0)),
		request(7, "shutdown", nil),
		notify("exit", nil),
	)

	var init initializeResult
	decodeResult(t, sess.responses["1"], &init)
	if !init.Capabilities.HoverProvider || !init.Capabilities.DocumentFormattingProvider || init.ServerInfo.Name != "numerus" {
		t.Errorf("capabilities = %+v", init)
	}

	pubs := sess.publishes[mainURI]
	if len(pubs) != 3 {
		t.Fatalf("main publishes = %d, want 3: %+v", len(pubs), pubs)
	}
	first := pubs[0]
	if first.Version == nil || *first.Version != 1 || len(first.Diagnostics) != 1 {
		t.Fatalf("first publish = %+v", first)
	}
	d := first.Diagnostics[0]
	if d.Code != "SEM3001" || d.Severity != 2 || d.Range.Start != (position{Line: 1, Character: 16}) || d.Range.End != (position{Line: 1, Character: 17}) {
		t.Errorf("diagnostic = %+v", d)
	}
	if pubs[1].Version == nil || *pubs[1].Version != 2 || len(pubs[1].Diagnostics) != 0 {
		t.Errorf("after change = %+v", pubs[1])
	}
	if len(pubs[2].Diagnostics) != 0 {
		t.Errorf("shutdown should clear diagnostics: %+v", pubs[2])
	}

	var h hover
	decodeResult(t, sess.responses["2"], &h)
	if !strings.HasPrefix(h.Contents.Value, "**XL** = 40") {
		t.Errorf("hover = %q", h.Contents.Value)
	}

	var loc location
	decodeResult(t, sess.responses["3"], &loc)
	if loc.URI != mainURI || loc.Range.Start != (position{Line: 0, Character: 8}) {
		t.Errorf("definition = %+v", loc)
	}

	var items []completionItem
	decodeResult(t, sess.responses["4"], &items)
	labels := map[string]int{}
	for _, it := range items {
		labels[it.Label] = it.Kind
	}
	if labels["DECLARA"] != completionKindKeyword || labels["x"] != completionKindVariable {
		t.Errorf("completion = %+v", items)
	}

	var edits []textEdit
	decodeResult(t, sess.responses["5"], &edits)
	if len(edits) != 1 || edits[0].NewText != "SCRIBE(XL)\n" || edits[0].Range.End != (position{Line: 0, Character: 12}) {
		t.Errorf("formatting = %+v", edits)
	}

	if e := sess.responses["6"].Error; e == nil || e.Code != -32601 {
		t.Errorf("unknown method error = %+v", e)
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var in, out bytes.Buffer
	if err := writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`)); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(&in, &out, ServerOptions{Log: io.Discard})
	if err := srv.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("err = %v, want ErrExitWithoutShutdown", err)
	}
}

func TestTokenAt(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("t.npp", []byte("SCRIBE(xy)\n")))
	toks, err := lexer.Tokenize(sf)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		off  uint32
		kind token.Kind
		ok   bool
	}{
		{0, token.KwScribe, true},
		{7, token.Ident, true}, // начало xy важнее конца '('
		{9, token.RParen, true},
		{10, token.RParen, true},
	}
	for _, tt := range tests {
		tok, ok := tokenAt(toks, tt.off)
		if ok != tt.ok || tok.Kind != tt.kind {
			t.Errorf("tokenAt(%d) = %v, %v; want %v", tt.off, tok.Kind, ok, tt.kind)
		}
	}
}
