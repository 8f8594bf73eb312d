package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"numerus/internal/ast"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/source"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	toks, err := lexer.Tokenize(fs.Get(fs.AddVirtual("test.npp", []byte(src))))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func run(t *testing.T, src string, opts Options) ([]string, error) {
	t.Helper()
	return New(opts).Run(parseSource(t, src))
}

func TestEvaluatePrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"end to end", "DECLARA x EST 10\nDECLARA y EST XXXII\nDECLARA sum EST x ADDIUS y\nSCRIBE(sum)\nAVTEM", []string{"XLII"}},
		{"precedence", "SCRIBE(2 ADDIUS 3 MULTIPLICA 4)", []string{"XIV"}},
		{"grouping", "SCRIBE((2 ADDIUS 3) MULTIPLICA 4)", []string{"XX"}},
		{"left assoc", "SCRIBE(ARABIZA(100 DIVIDE 10 DIVIDE 5))", []string{"2"}},
		{"concat roman", "SCRIBE(\"Sum: \" ADDIUS 5)", []string{"Sum: V"}},
		{"concat arabiza", "SCRIBE(\"Sum: \" ADDIUS ARABIZA(5))", []string{"Sum: 5"}},
		{"number then string", "SCRIBE(4 ADDIUS \" legiones\")", []string{"IV legiones"}},
		{"string string", "SCRIBE(\"ave \" ADDIUS \"caesar\")", []string{"ave caesar"}},
		{"romaniza", "SCRIBE(ROMANIZA(1999))", []string{"MCMXCIX"}},
		{"arabiza", "SCRIBE(ARABIZA(MMXXIV))", []string{"2024"}},
		{"assignment", "DECLARA x EST 1\nx EST x ADDIUS 1\nSCRIBE(x)", []string{"II"}},
		{"zero prints decimal", "SCRIBE(5 SUBTRAHE 5)", []string{"0"}},
		{"negative prints decimal", "SCRIBE(3 SUBTRAHE 10)", []string{"-7"}},
		{"large prints decimal", "SCRIBE(4000)", []string{"4000"}},
		{"truncating division", "SCRIBE(ARABIZA((0 SUBTRAHE 7) DIVIDE 2))", []string{"-3"}},
		{"single letter names", "DECLARA I EST VI\nDECLARA V EST I ADDIUS 1\nSCRIBE(V)", []string{"VII"}},
		{"no output", "AVTEM\nDECLARA a EST 1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.src, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    ErrorKind
		partial []string
		spanAt  uint32
	}{
		{"division by zero", "SCRIBE(10 DIVIDE 0)\nSCRIBE(II)", DivisionByZero, nil, 7},
		{"duplicate", "DECLARA X EST 1\nSCRIBE(X)\nDECLARA X EST 2", DuplicateDeclaration, []string{"I"}, 34},
		{"undeclared assign", "Y EST 1", UndeclaredVariable, nil, 0},
		{"undeclared read", "SCRIBE(z ADDIUS 1)", UndeclaredVariable, nil, 7},
		{"sub string", "SCRIBE(\"a\" SUBTRAHE 1)", TypeMismatch, nil, 7},
		{"mul string right", "SCRIBE(2 MULTIPLICA \"b\")", TypeMismatch, nil, 20},
		{"romaniza string", "SCRIBE(ROMANIZA(\"x\"))", TypeMismatch, nil, 16},
		{"arabiza string", "SCRIBE(ARABIZA(\"x\"))", TypeMismatch, nil, 15},
		{"romaniza zero", "SCRIBE(ROMANIZA(1 SUBTRAHE 1))", NumeralOutOfRange, nil, 7},
		{"romaniza too big", "SCRIBE(ROMANIZA(4000))", NumeralOutOfRange, nil, 7},
		{"overflow", "DECLARA big EST 2147483647\nSCRIBE(big ADDIUS 1)", NumeralOutOfRange, nil, 34},
		{"multiply overflow", "SCRIBE(65536 MULTIPLICA 65536)", NumeralOutOfRange, nil, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.src, Options{})
			var rtErr *RuntimeError
			if !errors.As(err, &rtErr) {
				t.Fatalf("expected *RuntimeError, got %v", err)
			}
			if rtErr.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%v)", rtErr.Kind, tt.kind, err)
			}
			if rtErr.Span.Start != tt.spanAt {
				t.Errorf("span starts at %d, want %d", rtErr.Span.Start, tt.spanAt)
			}
			if len(tt.partial) > 0 && strings.Join(out, "|") != strings.Join(tt.partial, "|") {
				t.Errorf("partial output = %q, want %q", out, tt.partial)
			}
			if d := rtErr.Diagnostic(); d.Code != tt.kind.Code() {
				t.Errorf("diagnostic code = %v", d.Code.ID())
			}
		})
	}
}

func TestDivisionByZeroKeepsEarlierOutput(t *testing.T) {
	out, err := run(t, "SCRIBE(1)\nSCRIBE(10 DIVIDE 0)\nSCRIBE(2)", Options{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(out) != 1 || out[0] != "I" {
		t.Errorf("output before failure = %q, want [I]", out)
	}
}

func TestInitializerEvaluatedBeforeDuplicateCheck(t *testing.T) {
	_, err := run(t, "DECLARA x EST 1\nDECLARA x EST y", Options{})
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) || rtErr.Kind != UndeclaredVariable {
		t.Fatalf("expected UndeclaredVariable from the initializer, got %v", err)
	}
}

func TestArabicNumeralsAndStdout(t *testing.T) {
	var buf bytes.Buffer
	out, err := run(t, "SCRIBE(XLII)\nSCRIBE(\"n=\" ADDIUS 7)", Options{Numerals: StyleArabic, Stdout: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(out, "|") != "42|n=7" {
		t.Errorf("output = %q", out)
	}
	if buf.String() != "42\nn=7\n" {
		t.Errorf("stdout = %q", buf.String())
	}
}

func TestPersistentEnvironmentAcrossExec(t *testing.T) {
	in := New(Options{})
	first := parseSource(t, "DECLARA x EST 5")
	second := parseSource(t, "SCRIBE(x MULTIPLICA 2)")
	if _, err := in.Exec(first.Stmts[0]); err != nil {
		t.Fatal(err)
	}
	out, err := in.Exec(second.Stmts[0])
	if err != nil || len(out) != 1 || out[0] != "X" {
		t.Fatalf("Exec = %q, %v", out, err)
	}
	if names := in.Env().Names(); len(names) != 1 || names[0] != "x" {
		t.Errorf("Names = %v", names)
	}
}

func TestEvaluateWithSharedEnvironment(t *testing.T) {
	env := NewEnvironment()
	if err := env.Declare("seed", Number(3)); err != nil {
		t.Fatal(err)
	}
	out, err := Evaluate(parseSource(t, "SCRIBE(seed)"), env, Options{})
	if err != nil || out[0] != "III" {
		t.Fatalf("Evaluate = %q, %v", out, err)
	}
	if env.Assign("missing", Number(1)) == nil {
		t.Error("Assign to a missing name must fail")
	}
	if env.Declare("seed", Number(1)) == nil {
		t.Error("Declare of an existing name must fail")
	}
}

func TestNumeralStyle(t *testing.T) {
	if s, err := ParseNumeralStyle("Arabic"); err != nil || s != StyleArabic {
		t.Errorf("ParseNumeralStyle(Arabic) = %v, %v", s, err)
	}
	if _, err := ParseNumeralStyle("greek"); err == nil {
		t.Error("unknown style must fail")
	}
	if StyleRoman.Format(9) != "IX" || StyleRoman.Format(-1) != "-1" || StyleArabic.Format(9) != "9" {
		t.Error("Format mismatch")
	}
	if String("a").Inspect(StyleRoman) != `"a"` || Number(4).Inspect(StyleRoman) != "IV" {
		t.Error("Inspect mismatch")
	}
}
