package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), `
[package]
name = "demo"

[run]
main = "src/main.npp"
numerals = "arabic"

[check]
max_diagnostics = 5
`)
	writeFile(t, filepath.Join(root, "src", "main.npp"), "SCRIBE(1)\n")

	m, ok, err := LoadManifest(filepath.Join(root, "src"))
	if err != nil || !ok {
		t.Fatalf("LoadManifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" || m.Numerals() != "arabic" || m.MaxDiagnostics() != 5 || m.Stages() != DefaultStages {
		t.Errorf("manifest = %+v", m.Config)
	}
	mainPath, err := m.MainPath()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(mainPath) != "main.npp" {
		t.Errorf("main = %s", mainPath)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	m, ok, err := LoadManifest(t.TempDir())
	if err != nil || ok || m != nil {
		t.Errorf("got %v %v %v, want no manifest", m, ok, err)
	}
	// nil manifest still answers with defaults
	if m.Numerals() != DefaultNumerals || m.MaxDiagnostics() != DefaultMaxDiagnostics {
		t.Error("nil manifest defaults")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no package", "[run]\nmain = \"a.npp\"\n", "missing [package]"},
		{"no name", "[package]\nversion = \"1\"\n", "missing [package].name"},
		{"bad toml", "[package\n", "failed to parse TOML"},
		{"unknown key", "[package]\nname = \"x\"\nflavour = \"y\"\n", "unknown key package.flavour"},
		{"bad numerals", "[package]\nname = \"x\"\n[run]\nnumerals = \"greek\"\n", "[run].numerals"},
		{"bad stages", "[package]\nname = \"x\"\n[check]\nstages = \"lint\"\n", "[check].stages"},
		{"negative max", "[package]\nname = \"x\"\n[check]\nmax_diagnostics = -1\n", "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestMainPathMissing(t *testing.T) {
	m := &Manifest{Path: "numerus.toml", Root: t.TempDir()}
	if _, err := m.MainPath(); !errors.Is(err, ErrMainMissing) {
		t.Errorf("err = %v, want ErrMainMissing", err)
	}
	m.Config.Run.Main = "nope.npp"
	if _, err := m.MainPath(); err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("err = %v", err)
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	res, err := Init(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !res.CreatedMain {
		t.Error("main.npp was not created")
	}
	m, ok, err := LoadManifest(dir)
	if err != nil || !ok {
		t.Fatalf("re-load: %v", err)
	}
	if m.Config.Package.Name != "hello" || m.Config.Run.Main != "main.npp" {
		t.Errorf("config = %+v", m.Config)
	}
	if _, err := m.MainPath(); err != nil {
		t.Error(err)
	}
	if _, err := Init(dir); err == nil {
		t.Error("second Init must refuse to overwrite")
	}
}
