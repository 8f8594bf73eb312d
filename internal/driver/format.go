package driver

import (
	"bytes"
	"context"
	"errors"
	"os"

	"numerus/internal/format"
	"numerus/internal/source"
	"numerus/internal/trace"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	// Check reports Changed without touching files.
	Check bool
	// Stdout returns the formatted bytes instead of rewriting files.
	Stdout  bool
	Options format.Options
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats files and directories (recursively collecting source
// files). Per-file failures are reported in FormatResult.Err.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "format")
	defer span.End("")

	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := FormatResult{Path: path}
		formatted, changed, err := formatSingleFile(path, opts.Options)
		switch {
		case err != nil:
			result.Err = err
		case opts.Check:
			result.Changed = changed
		case opts.Stdout:
			result.Formatted = formatted
			result.Changed = changed
		case changed:
			mode := os.FileMode(0o644)
			if info, statErr := os.Stat(path); statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
				result.Err = err
			} else {
				result.Changed = true
			}
		}
		trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "format", path, trace.CurrentSpan(ctx))
		results = append(results, result)
	}
	return results, nil
}

func formatSingleFile(path string, opt format.Options) (formatted []byte, changed bool, err error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddNormalized(path, data, 0))

	formatted, err = format.FormatFile(sf, opt)
	if err != nil {
		return nil, false, err
	}
	if err := format.CheckRoundTrip(sf, path, formatted); err != nil {
		return nil, false, err
	}
	// сравниваем с сырыми байтами: CRLF и BOM тоже считаются изменением
	return formatted, !bytes.Equal(data, formatted), nil
}
