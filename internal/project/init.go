package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// InitResult lists what Init wrote.
type InitResult struct {
	Dir         string
	Manifest    string
	Main        string
	CreatedMain bool
}

const defaultMain = `NOTA: numerus hello world
DECLARA salve EST "Salve, munde! "
SCRIBE(salve ADDIUS MMXXVI)
`

// Init creates numerus.toml and main.npp in dir, creating dir when needed.
// An existing manifest is never overwritten; an existing main.npp is kept.
func Init(dir string) (InitResult, error) {
	target, err := filepath.Abs(dir)
	if err != nil {
		return InitResult{}, err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return InitResult{}, err
		}
		if err = os.MkdirAll(target, 0o755); err != nil {
			return InitResult{}, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return InitResult{}, fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "numerus-project"
	}

	res := InitResult{
		Dir:      target,
		Manifest: filepath.Join(target, ManifestName),
		Main:     filepath.Join(target, "main"+SourceExt),
	}
	if _, err := os.Stat(res.Manifest); err == nil {
		return InitResult{}, fmt.Errorf("project already initialized: %s exists", res.Manifest)
	}

	manifest, err := EncodeConfig(DefaultConfig(name))
	if err != nil {
		return InitResult{}, err
	}
	if err := os.WriteFile(res.Manifest, manifest, 0o600); err != nil {
		return InitResult{}, fmt.Errorf("failed to write manifest: %w", err)
	}

	if _, err := os.Stat(res.Main); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(res.Main, []byte(defaultMain), 0o600); err != nil {
			return InitResult{}, fmt.Errorf("failed to write %s: %w", filepath.Base(res.Main), err)
		}
		res.CreatedMain = true
	}
	return res, nil
}

// DefaultConfig is the manifest written by Init.
func DefaultConfig(name string) Config {
	return Config{
		Package: PackageConfig{Name: name, Version: "0.1.0"},
		Run:     RunConfig{Main: "main" + SourceExt, Numerals: DefaultNumerals},
		Check:   CheckConfig{MaxDiagnostics: DefaultMaxDiagnostics, Stages: DefaultStages},
	}
}

// EncodeConfig renders cfg as TOML with a header comment.
func EncodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# numerus project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}
