package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"numerus/internal/diag"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/source"
)

func newFile(t *testing.T, name, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.AddVirtual(name, []byte(content))
}

func TestJSONShape(t *testing.T) {
	fs, id := newFile(t, "a.npp", "SCRIBE(1\n")
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnclosedParen, source.Span{File: id, Start: 8, End: 8}, "expected ')', found end of line"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	items := doc["diagnostics"]
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics", len(items))
	}
	want := map[string]any{
		"line":       float64(1),
		"column":     float64(9),
		"end_line":   float64(1),
		"end_column": float64(9),
		"severity":   "error",
		"message":    "expected ')', found end of line",
		"code":       "SYN2002",
	}
	if len(items[0]) != len(want) {
		t.Errorf("keys = %v", items[0])
	}
	for k, v := range want {
		if items[0][k] != v {
			t.Errorf("%s = %v, want %v", k, items[0][k], v)
		}
	}
}

func TestJSONEmptyAndFile(t *testing.T) {
	fs, id := newFile(t, "dir/b.npp", "x EST 1\n")
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), fs, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Errorf("empty output = %s", buf.String())
	}

	items := []diag.Diagnostic{diag.New(diag.SevWarning, diag.SemaUndeclared, source.Span{File: id, Start: 0, End: 1}, "w")}
	out := BuildDiagnostics(items, fs, JSONOpts{IncludeFile: true, PathMode: PathModeBasename})
	if out[0].File != "b.npp" || out[0].Severity != "warning" || out[0].EndColumn != 2 {
		t.Errorf("entry = %+v", out[0])
	}
}

func TestJSONMax(t *testing.T) {
	fs, id := newFile(t, "a.npp", "abc")
	items := []diag.Diagnostic{
		diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "a"),
		diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: 1, End: 2}, "b"),
	}
	if got := BuildDiagnostics(items, fs, JSONOpts{Max: 1}); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestPrettyCaretWide(t *testing.T) {
	fs, id := newFile(t, "w.npp", "SCRIBE(\"ü\" ADDIUS y)\n")
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.SemaUndeclared, source.Span{File: id, Start: 19, End: 20}, "use of undeclared variable 'y'"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()

	if !strings.HasPrefix(out, "w.npp:1:19: WARNING SEM3001: use of undeclared variable 'y'\n") {
		t.Errorf("header mismatch:\n%s", out)
	}
	if !strings.Contains(out, " 1 | SCRIBE(") {
		t.Errorf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "   | "+strings.Repeat(" ", 18)+"^\n") {
		t.Errorf("caret misaligned:\n%q", out)
	}
}

func TestPrettyUnderlineAndNotes(t *testing.T) {
	fs, id := newFile(t, "n.npp", "DECLARA x EST 1\nDECLARA x EST 2\n")
	d := diag.New(diag.SevWarning, diag.SemaDuplicateDecl, source.Span{File: id, Start: 24, End: 25}, "dup").
		WithNote(source.Span{File: id, Start: 8, End: 9}, "previous declaration is here").
		WithFix("rename it")

	var buf bytes.Buffer
	PrettyDiagnostics(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{Context: 1, ShowNotes: true, ShowFixes: true})
	out := buf.String()
	for _, want := range []string{
		" 1 | DECLARA x EST 1\n",
		" 2 | DECLARA x EST 2\n",
		"= note: n.npp:1:9: previous declaration is here",
		"= help: rename it",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderError(t *testing.T) {
	fs, id := newFile(t, "e.npp", "DECLARA EST 1\n")
	toks, err := lexer.Tokenize(fs.Get(id))
	if err != nil {
		t.Fatal(err)
	}
	_, err = parser.Parse(toks)
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var buf bytes.Buffer
	if !RenderError(&buf, err, fs, PrettyOpts{}) {
		t.Fatal("syntax error was not rendered")
	}
	if !strings.Contains(buf.String(), "e.npp:1:9: ERROR SYN2003") {
		t.Errorf("output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "^~~") {
		t.Errorf("underline should cover EST:\n%s", buf.String())
	}
	if RenderError(&buf, nil, fs, PrettyOpts{}) {
		t.Error("nil error rendered")
	}
}

func TestShort(t *testing.T) {
	fs, id := newFile(t, "s.npp", "SCRIBE(1\n")
	var buf bytes.Buffer
	items := []diag.Diagnostic{diag.NewError(diag.SynUnclosedParen, source.Span{File: id, Start: 8, End: 8}, "boom")}
	if err := Short(&buf, items, fs, false); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "error SYN2002 s.npp:1:9 boom\n" {
		t.Errorf("short = %q", got)
	}
}
