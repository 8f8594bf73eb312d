package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCLI прогоняет корневую команду в процессе; флаги сбрасываются до и после
func executeCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err = rootCmd.ExecuteContext(context.Background())
	profileCleanup()
	traceCleanup()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckExitStatus(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		sub      bool
		diags    int
		severity string
		failing  bool
	}{
		{"two syntax errors", "DECLARA EST 1\nSCRIBE(1\n", false, 2, "error", true},
		{"two syntax errors via check", "DECLARA EST 1\nSCRIBE(1\n", true, 2, "error", true},
		{"warning only", "SCRIBE(y)\n", false, 1, "warning", false},
		{"clean", "DECLARA x EST XL\nSCRIBE(x)\n", true, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "prog.npp", tt.src)
			args := []string{"--check", path}
			if tt.sub {
				args = []string{"check", path}
			}
			stdout, _, err := executeCLI(t, args...)
			if tt.failing != errors.Is(err, errSilentExit) {
				t.Fatalf("err = %v, want failing=%v", err, tt.failing)
			}
			if !tt.failing && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var doc struct {
				Diagnostics []jsonDiag `json:"diagnostics"`
			}
			if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, stdout)
			}
			if len(doc.Diagnostics) != tt.diags {
				t.Fatalf("diagnostics = %d, want %d: %+v", len(doc.Diagnostics), tt.diags, doc.Diagnostics)
			}
			for _, d := range doc.Diagnostics {
				if d.Severity != tt.severity {
					t.Errorf("severity = %s, want %s", d.Severity, tt.severity)
				}
			}
		})
	}
}

func TestRunExitStatus(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		sub     bool
		stdout  string
		code    string
		failing bool
	}{
		{"ok", "DECLARA x EST XL\nSCRIBE(x ADDIUS II)\n", false, "XLII\n", "", false},
		{"runtime error keeps earlier output", "SCRIBE(II)\nSCRIBE(10 DIVIDE 0)\nSCRIBE(III)\n", false, "II\n", "RUN6003", true},
		{"runtime error via run", "SCRIBE(II)\nSCRIBE(10 DIVIDE 0)\n", true, "II\n", "RUN6003", true},
		{"lex error", "SCRIBE(II)\nSCRIBE(IIII)\n", true, "", "LEX1004", true},
		{"syntax error", "SCRIBE(II)\nSCRIBE(1\n", false, "", "SYN", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "prog.npp", tt.src)
			args := []string{path}
			if tt.sub {
				args = []string{"run", path}
			}
			stdout, stderr, err := executeCLI(t, args...)
			if tt.failing {
				if !errors.Is(err, errSilentExit) {
					t.Fatalf("err = %v, want errSilentExit", err)
				}
				if !strings.Contains(stderr, tt.code) || !strings.Contains(stderr, "prog.npp:") {
					t.Errorf("stderr = %q, want %s with a position", stderr, tt.code)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v\n%s", err, stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
		})
	}
}

func TestFixAllReachesSemaFixes(t *testing.T) {
	path := writeSource(t, "fx.npp", "DECLARA x EST VIV\nDECLARA x EST II\ny EST x\nSCRIBE(y)\n")
	stdout, stderr, err := executeCLI(t, "fix", "--all", path)
	if err != nil {
		t.Fatalf("fix: %v\n%s", err, stderr)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "DECLARA x EST IX\nx EST II\nDECLARA y EST x\nSCRIBE(y)\n"
	if string(got) != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if !strings.Contains(stdout, "Applied 3 fix(es)") || strings.Count(stdout, "fx.npp (") != 4 {
		t.Errorf("report =\n%s", stdout)
	}
	if strings.Contains(stdout, "Skipped fixes") {
		t.Errorf("nothing should be skipped:\n%s", stdout)
	}

	// одиночный режим по-прежнему делает один шаг
	path = writeSource(t, "once.npp", "DECLARA x EST VIV\nDECLARA x EST II\n")
	if _, _, err := executeCLI(t, "fix", path); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(path); string(got) != "DECLARA x EST IX\nDECLARA x EST II\n" {
		t.Errorf("--once file = %q", got)
	}
}

func TestVersionReport(t *testing.T) {
	stdout, _, err := executeCLI(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var rep versionReport
	if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if rep.Language != "Numerus++" || rep.Extension != ".npp" || rep.Numerals != "I..MMMCMXCIX" || rep.Min != 1 || rep.Max != 3999 {
		t.Errorf("report = %+v", rep)
	}
	if rep.Keywords != nil || rep.Go != "" {
		t.Errorf("short report should not carry build details: %+v", rep)
	}

	stdout, _, err = executeCLI(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatalf("version --full: %v", err)
	}
	rep = versionReport{}
	if err := json.Unmarshal([]byte(stdout), &rep); err != nil {
		t.Fatal(err)
	}
	if len(rep.Keywords) != 10 || rep.Keywords[0] != "DECLARA" || rep.Comment != "NOTA:" || rep.Go == "" {
		t.Errorf("full report = %+v", rep)
	}

	stdout, _, err = executeCLI(t, "--color", "off", "version", "--full")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"language: Numerus++ (*.npp)", "numerals: I..MMMCMXCIX (1..3999)", "keywords: DECLARA EST", "built:    unknown"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("pretty output misses %q:\n%s", want, stdout)
		}
	}

	if _, _, err := executeCLI(t, "version", "--format", "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}
