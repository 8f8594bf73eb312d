package fix_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"numerus/internal/diag"
	"numerus/internal/fix"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/sema"
	"numerus/internal/source"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// collect прогоняет lexer+parser+sema и собирает диагностики
func collect(t *testing.T, path string) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.New(fs.Get(id), lexer.Options{Reporter: rep}).All()
	prog := parser.ParseRecover(toks, rep)
	if !bag.HasErrors() {
		sema.Check(prog, sema.Options{Reporter: rep})
	}
	bag.Sort()
	return fs, bag.Items()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func TestApplyAllRewritesFile(t *testing.T) {
	path := writeTemp(t, "prog.npp", "DECLARA x EST II\nDECLARA x EST III\ny EST x\nSCRIBE(y)\n")
	fs, diags := collect(t, path)

	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 2 {
		t.Fatalf("applied %d fixes, want 2: %+v", len(res.Applied), res.Applied)
	}
	want := "DECLARA x EST II\nx EST III\nDECLARA y EST x\nSCRIBE(y)\n"
	if got := readFile(t, path); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if len(res.FileChanges) != 1 || res.FileChanges[0].EditCount != 2 {
		t.Errorf("file changes = %+v", res.FileChanges)
	}
}

func TestApplyOnceTakesFirstFix(t *testing.T) {
	path := writeTemp(t, "once.npp", "SCRIBE(VIV)\nSCRIBE(IIX)\n")
	fs, diags := collect(t, path)

	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeOnce})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].Code != diag.LexInvalidNumeral {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if got := readFile(t, path); got != "SCRIBE(IX)\nSCRIBE(IIX)\n" {
		t.Errorf("file = %q", got)
	}
}

func TestApplyByID(t *testing.T) {
	path := writeTemp(t, "id.npp", "SCRIBE(VIV)\nSCRIBE(IIX)\n")
	fs, diags := collect(t, path)

	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeID, TargetID: "LEX1004@2:8"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || res.Applied[0].ID != "LEX1004@2:8" {
		t.Fatalf("applied = %+v", res.Applied)
	}
	if got := readFile(t, path); got != "SCRIBE(VIV)\nSCRIBE(X)\n" {
		t.Errorf("file = %q", got)
	}

	_, err = fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeID, TargetID: "LEX1004@9:9"})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Errorf("unknown id: err = %v, want fix.ErrNoFixes", err)
	}
}

func TestApplyNoFixes(t *testing.T) {
	path := writeTemp(t, "clean.npp", "SCRIBE(XLII)\n")
	fs, diags := collect(t, path)
	if _, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll}); !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want fix.ErrNoFixes", err)
	}
	if _, err := fix.Apply(nil, diags, fix.ApplyOptions{}); err == nil {
		t.Fatal("nil FileSet should fail")
	}
}

func TestApplySkipsVirtualFiles(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<repl:1>", []byte("SCRIBE(IIII)"))
	span := source.Span{File: id, Start: 7, End: 11}
	diags := []diag.Diagnostic{
		diag.NewError(diag.LexInvalidNumeral, span, "non-canonical").AddFix(fix.ReplaceSpan("write IV", span, "IV")),
	}

	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if !errors.Is(err, fix.ErrNoFixes) {
		t.Fatalf("err = %v, want fix.ErrNoFixes", err)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Reason != "target file is virtual" {
		t.Errorf("skipped = %+v", res.Skipped)
	}
}

func TestApplySkipsConflicts(t *testing.T) {
	path := writeTemp(t, "conflict.npp", "SCRIBE(IIII)\n")
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	span := source.Span{File: id, Start: 7, End: 11}
	diags := []diag.Diagnostic{
		diag.NewError(diag.LexInvalidNumeral, span, "a").AddFix(fix.ReplaceSpan("write IV", span, "IV")),
		diag.NewError(diag.LexInvalidNumeral, span, "b").AddFix(fix.DeleteSpan("drop", span)),
	}

	res, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Applied) != 1 || len(res.Skipped) < 1 {
		t.Fatalf("applied=%+v skipped=%+v", res.Applied, res.Skipped)
	}
	if got := readFile(t, path); got != "SCRIBE(IV)\n" {
		t.Errorf("file = %q", got)
	}
}

func TestWrapWithKeepsOffsets(t *testing.T) {
	path := writeTemp(t, "wrap.npp", "SCRIBE(II ADDIUS III)\n")
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	span := source.Span{File: id, Start: 7, End: 20}
	diags := []diag.Diagnostic{
		diag.New(diag.SevInfo, diag.SynUnexpectedToken, span, "wrap").AddFix(fix.WrapWith("group", span, "(", ")")),
	}
	if _, err := fix.Apply(fs, diags, fix.ApplyOptions{Mode: fix.ApplyModeAll}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := readFile(t, path); got != "SCRIBE((II ADDIUS III))\n" {
		t.Errorf("file = %q", got)
	}
}
