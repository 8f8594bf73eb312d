package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numerus/internal/diag"
	"numerus/internal/interp"
	"numerus/internal/testkit"
)

type diagnoser interface {
	Diagnostic() diag.Diagnostic
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestScenarios(t *testing.T) {
	scenarios, err := testkit.LoadScenarios(filepath.Join("testdata", "scenarios"))
	if err != nil {
		t.Fatalf("load scenarios: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("no scenarios found")
	}

	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			name := sc.Name + ".npp"
			if sc.Check != nil {
				runCheckScenario(t, sc, name)
				return
			}
			runProgramScenario(t, sc, name)
		})
	}
}

func runCheckScenario(t *testing.T, sc testkit.Scenario, name string) {
	t.Helper()
	stage, err := ParseStage(sc.Stage)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	res, err := CheckSource(context.Background(), name, []byte(sc.Source), CheckOptions{Stage: stage})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	got := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, false)
	want := strings.Join(sc.Check, "\n")
	if got != want {
		t.Errorf("diagnostics mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func runProgramScenario(t *testing.T, sc testkit.Scenario, name string) {
	t.Helper()
	style, err := interp.ParseNumeralStyle(sc.Numerals)
	if err != nil {
		t.Fatalf("numerals: %v", err)
	}
	var stdout bytes.Buffer
	res, err := RunSource(context.Background(), name, []byte(sc.Source), RunOptions{Numerals: style, Stdout: &stdout})

	switch {
	case sc.Error == "" && err != nil:
		t.Fatalf("unexpected error: %v", err)
	case sc.Error != "":
		var d diagnoser
		if !errors.As(err, &d) {
			t.Fatalf("expected %s, got %v", sc.Error, err)
		}
		if code := d.Diagnostic().Code.ID(); code != sc.Error {
			t.Fatalf("error code = %s, want %s (%v)", code, sc.Error, err)
		}
	}

	if len(res.Output) != len(sc.Stdout) {
		t.Fatalf("output = %q, want %q", res.Output, sc.Stdout)
	}
	for i := range sc.Stdout {
		if res.Output[i] != sc.Stdout[i] {
			t.Errorf("line %d = %q, want %q", i, res.Output[i], sc.Stdout[i])
		}
	}
	var wantStdout string
	if len(sc.Stdout) > 0 {
		wantStdout = strings.Join(sc.Stdout, "\n") + "\n"
	}
	if stdout.String() != wantStdout {
		t.Errorf("stdout = %q, want %q", stdout.String(), wantStdout)
	}
}

func TestCheckUnreadableFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.npp")
	res, err := Check(context.Background(), missing, CheckOptions{})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Code != diag.IOLoadFileError || d.Severity != diag.SevError {
		t.Fatalf("unexpected diagnostic %s %s", d.Severity, d.Code.ID())
	}
	if !strings.HasPrefix(d.Message, "Cannot read file: ") {
		t.Errorf("message = %q", d.Message)
	}
	lc, _ := res.File.Resolve(d.Primary)
	if lc.Line != 1 || lc.Col != 1 {
		t.Errorf("position = %d:%d, want 1:1", lc.Line, lc.Col)
	}
}

func TestCheckStages(t *testing.T) {
	src := []byte("DECLARA x EST 10 DIVIDE 0\nSCRIBE(x\n")
	tests := []struct {
		stage    Stage
		codes    []diag.Code
		parsed   bool
		semaDone bool
	}{
		{StageTokenize, nil, false, false},
		{StageSyntax, []diag.Code{diag.SynUnclosedParen}, true, false},
		// sema не запускается при синтаксической ошибке
		{StageAll, []diag.Code{diag.SynUnclosedParen}, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			res, err := CheckSource(context.Background(), "stages.npp", src, CheckOptions{Stage: tt.stage})
			if err != nil {
				t.Fatal(err)
			}
			var codes []diag.Code
			for _, d := range res.Bag.Items() {
				codes = append(codes, d.Code)
			}
			if len(codes) != len(tt.codes) {
				t.Fatalf("codes = %v, want %v", codes, tt.codes)
			}
			for i := range codes {
				if codes[i] != tt.codes[i] {
					t.Errorf("code[%d] = %v, want %v", i, codes[i], tt.codes[i])
				}
			}
			if (res.Program != nil) != tt.parsed {
				t.Errorf("parsed = %v, want %v", res.Program != nil, tt.parsed)
			}
			if (res.Sema != nil) != tt.semaDone {
				t.Errorf("sema = %v, want %v", res.Sema != nil, tt.semaDone)
			}
		})
	}
}

func TestCheckSemaStage(t *testing.T) {
	src := []byte("DECLARA x EST 10 DIVIDE 0\n")
	res, err := CheckSource(context.Background(), "sema.npp", src, CheckOptions{Stage: StageSema})
	if err != nil {
		t.Fatal(err)
	}
	if res.Sema == nil {
		t.Fatal("sema did not run")
	}
	if res.HasErrors() {
		t.Fatal("sema must not produce errors")
	}
	if !res.Bag.HasWarnings() {
		t.Fatal("expected a division-by-zero warning")
	}
}

func TestCheckSeverityPolicy(t *testing.T) {
	src := []byte("SCRIBE(y)\n")
	tests := []struct {
		name     string
		opts     CheckOptions
		errors   int
		warnings int
	}{
		{"default", CheckOptions{}, 0, 1},
		{"no-warnings", CheckOptions{IgnoreWarnings: true}, 0, 0},
		{"warnings-as-errors", CheckOptions{WarningsAsErrors: true}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CheckSource(context.Background(), "policy.npp", src, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := res.Bag.CountBySeverity(diag.SevError); got != tt.errors {
				t.Errorf("errors = %d, want %d", got, tt.errors)
			}
			if got := res.Bag.CountBySeverity(diag.SevWarning); got != tt.warnings {
				t.Errorf("warnings = %d, want %d", got, tt.warnings)
			}
		})
	}
}

func TestCheckMaxDiagnostics(t *testing.T) {
	src := []byte("SCRIBE(a)\nSCRIBE(b)\nSCRIBE(c)\n")
	res, err := CheckSource(context.Background(), "cap.npp", src, CheckOptions{MaxDiagnostics: 2})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", res.Bag.Len())
	}
}

// лексер отчитывается раньше парсера, но лимит режет уже отсортированный список
func TestCheckMaxDiagnosticsKeepsEarliest(t *testing.T) {
	src := []byte("SCRIBE(1\nSCRIBE(~)\n")
	full, err := CheckSource(context.Background(), "order.npp", src, CheckOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if full.Bag.Len() != 2 {
		t.Fatalf("uncapped len = %d, want 2", full.Bag.Len())
	}

	res, err := CheckSource(context.Background(), "order.npp", src, CheckOptions{MaxDiagnostics: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("bag len = %d, want 1", res.Bag.Len())
	}
	if d := res.Bag.Items()[0]; d.Code != diag.SynUnclosedParen {
		t.Errorf("kept %s at %d, want the line 1 syntax error", d.Code.ID(), d.Primary.Start)
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckSource(ctx, "x.npp", []byte("AVTEM\n"), CheckOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestCheckCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "cached.npp", "DECLARA x EST 1\nDECLARA x EST 2\n")
	opts := CheckOptions{Cache: cache}

	first, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first check must not be a cache hit")
	}
	second, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second check should hit the cache")
	}

	a := diag.FormatShortDiagnostics(first.Bag.Items(), first.FileSet, true)
	b := diag.FormatShortDiagnostics(second.Bag.Items(), second.FileSet, true)
	if a != b {
		t.Errorf("cached diagnostics differ\nfirst:\n%s\nsecond:\n%s", a, b)
	}

	// Политика предупреждений применяется и к кэшированному результату
	third, err := Check(context.Background(), path, CheckOptions{Cache: cache, WarningsAsErrors: true})
	if err != nil {
		t.Fatal(err)
	}
	if !third.Cached || !third.HasErrors() {
		t.Errorf("cached=%v hasErrors=%v, want both true", third.Cached, third.HasErrors())
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Error("check after DropAll must miss the cache")
	}
}

func TestCheckCacheKeyDependsOnStage(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "stage.npp", "SCRIBE(y)\n")

	if _, err := Check(context.Background(), path, CheckOptions{Cache: cache, Stage: StageSyntax}); err != nil {
		t.Fatal(err)
	}
	res, err := Check(context.Background(), path, CheckOptions{Cache: cache, Stage: StageAll})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Fatal("different stage must not share a cache entry")
	}
	if !res.Bag.HasWarnings() {
		t.Error("full check should report the undeclared variable")
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.npp", "SCRIBE(I\n"),
		writeFile(t, dir, "b.npp", "SCRIBE(y)\n"),
		writeFile(t, dir, "c.npp", "SCRIBE(XII)\n"),
		filepath.Join(dir, "missing.npp"),
	}

	events := make(chan CheckEvent, len(paths)*3)
	results, err := CheckFiles(context.Background(), paths, CheckOptions{}, 2, events)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(paths) {
		t.Fatalf("results = %d, want %d", len(results), len(paths))
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Errorf("result %d path = %s, want %s", i, res.Path, paths[i])
		}
	}
	if !results[0].HasErrors() || results[1].HasErrors() || results[2].Bag.Len() != 0 || !results[3].HasErrors() {
		t.Error("unexpected per-file outcome")
	}

	done := make(map[int]CheckEvent)
	for ev := range events {
		if ev.Status == CheckDone {
			done[ev.Index] = ev
		}
	}
	if len(done) != len(paths) {
		t.Fatalf("done events = %d, want %d", len(done), len(paths))
	}
	if done[1].Warnings != 1 || done[1].Errors != 0 {
		t.Errorf("b.npp counts = %d errors, %d warnings", done[1].Errors, done[1].Warnings)
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.npp", "AVTEM\n")
	writeFile(t, dir, "a.npp", "AVTEM\n")
	writeFile(t, dir, "notes.txt", "skip")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "c.npp", "AVTEM\n")

	got, err := ExpandPaths([]string{dir, "explicit.npp"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.npp"),
		filepath.Join(dir, "b.npp"),
		filepath.Join(sub, "c.npp"),
		"explicit.npp",
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("ExpandPaths = %v, want %v", got, want)
	}
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.npp",
		"DECLARA x EST 10\nDECLARA y EST XXXII\nDECLARA sum EST x ADDIUS y\nSCRIBE(sum)\nAVTEM\n")

	var stdout bytes.Buffer
	res, err := Run(context.Background(), path, RunOptions{Stdout: &stdout, EnableTimings: true})
	if err != nil {
		t.Fatal(err)
	}
	if stdout.String() != "XLII\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
	if res.Timer == nil || len(res.Timer.Phases()) == 0 {
		t.Error("timings were requested but not recorded")
	}
}

func TestRunMissingFile(t *testing.T) {
	res, err := Run(context.Background(), filepath.Join(t.TempDir(), "nope.npp"), RunOptions{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if res != nil {
		t.Error("result must be nil when the file cannot be read")
	}
	if !strings.HasPrefix(err.Error(), "cannot read file: ") {
		t.Errorf("error = %q", err)
	}
}

func TestParseAndTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.npp", "NOTA: hello\nSCRIBE(XL)\n")

	toks, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if toks.Bag.Len() != 0 || len(toks.Tokens) == 0 {
		t.Fatalf("tokens = %d, diagnostics = %d", len(toks.Tokens), toks.Bag.Len())
	}

	parsed, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Bag.Len() != 0 || len(parsed.Program.Stmts) != 1 {
		t.Fatalf("stmts = %d, diagnostics = %d", len(parsed.Program.Stmts), parsed.Bag.Len())
	}
}
