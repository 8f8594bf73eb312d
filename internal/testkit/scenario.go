package testkit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario is one end-to-end fixture: a program, how to run it and what to expect.
type Scenario struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Numerals string `yaml:"numerals"`
	// Stdout lists the lines printed before any failure.
	Stdout []string `yaml:"stdout"`
	// Error is the diagnostic code of the expected run failure, e.g. RUN6003.
	Error string `yaml:"error"`
	// Check lists `check --format short` lines; the file is named <Name>.npp.
	Check []string `yaml:"check"`
	// Stage limits the check run; empty means all.
	Stage string `yaml:"stage"`

	File string `yaml:"-"`
}

// LoadScenarios decodes every *.yaml file in dir, sorted by file name.
// A file may hold several YAML documents.
func LoadScenarios(dir string) ([]Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var out []Scenario
	for _, path := range paths {
		scenarios, err := loadScenarioFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, scenarios...)
	}
	return out, nil
}

func loadScenarioFile(path string) ([]Scenario, error) {
	// #nosec G304 -- fixtures from testdata
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var out []Scenario
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	for {
		var sc Scenario
		if err := dec.Decode(&sc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if strings.TrimSpace(sc.Name) == "" {
			return nil, fmt.Errorf("%s: scenario #%d has no name", path, len(out)+1)
		}
		sc.File = path
		out = append(out, sc)
	}
	return out, nil
}
