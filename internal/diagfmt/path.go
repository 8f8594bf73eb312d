package diagfmt

import (
	"fmt"
	"path/filepath"

	"numerus/internal/source"
)

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		base := baseDir
		if base == "" {
			base = "."
		}
		if rel, err := source.RelativePath(f.Path, base); err == nil {
			return rel
		}
	case PathModeBasename:
		return source.BaseName(f.Path)
	}
	return f.Path
}

// formatSpan formats a source.Span into a string.
// If fs is non-nil, it resolves the span to "startLine:startCol-endLine:endCol".
// If fs is nil, it returns "span(start-end)".
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
