package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Defaults used when neither a flag nor the manifest sets a value.
const (
	DefaultNumerals       = "roman"
	DefaultStages         = "all"
	DefaultMaxDiagnostics = 100
	SourceExt             = ".npp"
)

var (
	validNumerals = []string{"roman", "arabic"}
	validStages   = []string{"tokenize", "syntax", "sema", "all"}
)

// ErrMainMissing is returned when [run].main is needed but not set.
var ErrMainMissing = errors.New("[run].main is not set")

// Manifest is a decoded numerus.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the numerus.toml layout.
type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
}

type RunConfig struct {
	Main     string `toml:"main,omitempty"`
	Numerals string `toml:"numerals,omitempty"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics,omitempty"`
	Stages         string `toml:"stages,omitempty"`
}

// LoadManifest finds numerus.toml above startDir and decodes it.
// ok is false when there is no manifest at all.
func LoadManifest(startDir string) (m *Manifest, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig decodes and validates the manifest at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
	}
	if meta.IsDefined("run", "numerals") && !slices.Contains(validNumerals, cfg.Run.Numerals) {
		return Config{}, fmt.Errorf("%s: [run].numerals must be one of %s, got %q", path, strings.Join(validNumerals, "|"), cfg.Run.Numerals)
	}
	if meta.IsDefined("check", "stages") && !slices.Contains(validStages, cfg.Check.Stages) {
		return Config{}, fmt.Errorf("%s: [check].stages must be one of %s, got %q", path, strings.Join(validStages, "|"), cfg.Check.Stages)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// Numerals returns the configured display style or the default.
func (m *Manifest) Numerals() string {
	if m == nil || m.Config.Run.Numerals == "" {
		return DefaultNumerals
	}
	return m.Config.Run.Numerals
}

// Stages returns the configured check stages or the default.
func (m *Manifest) Stages() string {
	if m == nil || m.Config.Check.Stages == "" {
		return DefaultStages
	}
	return m.Config.Check.Stages
}

// MaxDiagnostics returns the configured diagnostic cap or the default.
func (m *Manifest) MaxDiagnostics() int {
	if m == nil || m.Config.Check.MaxDiagnostics == 0 {
		return DefaultMaxDiagnostics
	}
	return m.Config.Check.MaxDiagnostics
}

// MainPath resolves [run].main relative to the project root.
func (m *Manifest) MainPath() (string, error) {
	if m == nil {
		return "", fmt.Errorf("missing project manifest")
	}
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	if mainRel == "" {
		return "", fmt.Errorf("%s: %w", m.Path, ErrMainMissing)
	}
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if info.IsDir() || filepath.Ext(mainPath) != SourceExt {
		return "", fmt.Errorf("%s: [run].main must be a %s file", m.Path, SourceExt)
	}
	return mainPath, nil
}
