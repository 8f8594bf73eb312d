package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"
)

func TestFramingCarriesRequests(t *testing.T) {
	uri := "file:///tmp/main.npp"
	var buf bytes.Buffer
	if err := writeJSON(&buf, request(1, "textDocument/hover", docPos(uri, 0, 15))); err != nil {
		t.Fatal(err)
	}
	// клиенты иногда шлют Content-Type и заголовки в другом регистре
	def := `{"jsonrpc":"2.0","id":2,"method":"textDocument/definition","params":{"textDocument":{"uri":"` + uri + `"},"position":{"line":1,"character":7}}}`
	buf.WriteString("content-length: " + strconv.Itoa(len(def)) + "\r\nContent-Type: application/vscode-jsonrpc; charset=utf-8\r\n\r\n" + def)

	reader := bufio.NewReader(&buf)
	want := []struct {
		id     string
		method string
		pos    position
	}{
		{"1", "textDocument/hover", position{Line: 0, Character: 15}},
		{"2", "textDocument/definition", position{Line: 1, Character: 7}},
	}
	for _, w := range want {
		body, err := readMessage(reader)
		if err != nil {
			t.Fatalf("read %s: %v", w.method, err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		if string(msg.ID) != w.id || msg.Method != w.method {
			t.Errorf("got id=%s method=%s, want id=%s method=%s", msg.ID, msg.Method, w.id, w.method)
		}
		var params textDocumentPositionParams
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			t.Fatal(err)
		}
		if params.TextDocument.URI != uri || params.Position != w.pos {
			t.Errorf("%s params = %+v", w.method, params)
		}
	}
	if _, err := readMessage(reader); !errors.Is(err, io.EOF) {
		t.Errorf("after last frame err = %v, want EOF", err)
	}
}

func TestReadMessageErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		text  string
	}{
		{name: "missing length", input: "Content-Type: x\r\n\r\n{}", want: errNoContentLength},
		{name: "bad length", input: "Content-Length: dva\r\n\r\n", text: "bad Content-Length"},
		{name: "negative length", input: "Content-Length: -2\r\n\r\n", text: "bad Content-Length"},
		{name: "too large", input: "Content-Length: 99999999999\r\n\r\n", text: "exceeds"},
		{name: "truncated body", input: "Content-Length: 40\r\n\r\n{\"method\":\"exit\"}", want: io.ErrUnexpectedEOF},
		{name: "truncated header", input: "Content-Length: 2\r\n", want: io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readMessage(bufio.NewReader(strings.NewReader(tt.input)))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("err = %v, want it to mention %q", err, tt.text)
			}
		})
	}
}
