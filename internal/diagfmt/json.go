package diagfmt

import (
	"encoding/json"
	"io"

	"numerus/internal/diag"
	"numerus/internal/source"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message string `json:"message"`
	Line    uint32 `json:"line"`
	Column  uint32 `json:"column"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	Title     string `json:"title"`
	Line      uint32 `json:"line"`
	Column    uint32 `json:"column"`
	EndLine   uint32 `json:"end_line"`
	EndColumn uint32 `json:"end_column"`
	NewText   string `json:"new_text"`
}

// DiagnosticJSON is one entry of the check document. Lines and columns are
// 1-based; EndColumn points one past the last character.
type DiagnosticJSON struct {
	File      string     `json:"file,omitempty"`
	Line      uint32     `json:"line"`
	Column    uint32     `json:"column"`
	EndLine   uint32     `json:"end_line"`
	EndColumn uint32     `json:"end_column"`
	Severity  string     `json:"severity"`
	Message   string     `json:"message"`
	Code      string     `json:"code"`
	Notes     []NoteJSON `json:"notes,omitempty"`
	Fixes     []FixJSON  `json:"fixes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// BuildDiagnostics converts diagnostics that belong to fs into JSON entries.
func BuildDiagnostics(items []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) []DiagnosticJSON {
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := make([]DiagnosticJSON, 0, n)
	for i := range n {
		d := &items[i]
		start, end := fs.Resolve(d.Primary)
		entry := DiagnosticJSON{
			Line:      start.Line,
			Column:    start.Col,
			EndLine:   end.Line,
			EndColumn: end.Col,
			Severity:  d.Severity.Label(),
			Message:   d.Message,
			Code:      d.Code.ID(),
		}
		if opts.IncludeFile {
			entry.File = formatPath(fs.Get(d.Primary.File), opts.PathMode, opts.BaseDir)
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				pos, _ := fs.Resolve(note.Span)
				entry.Notes = append(entry.Notes, NoteJSON{Message: note.Msg, Line: pos.Line, Column: pos.Col})
			}
		}
		if opts.IncludeFixes {
			for _, fix := range d.Fixes {
				for _, edit := range fix.Edits {
					s, e := fs.Resolve(edit.Span)
					entry.Fixes = append(entry.Fixes, FixJSON{
						Title:     fix.Title,
						Line:      s.Line,
						Column:    s.Col,
						EndLine:   e.Line,
						EndColumn: e.Col,
						NewText:   edit.NewText,
					})
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	return DiagnosticsOutput{Diagnostics: BuildDiagnostics(bag.Items(), fs, opts)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	return WriteJSON(w, BuildDiagnosticsOutput(bag, fs, opts))
}

// WriteJSON encodes a prepared document, e.g. one merged from several files.
func WriteJSON(w io.Writer, out DiagnosticsOutput) error {
	if out.Diagnostics == nil {
		out.Diagnostics = []DiagnosticJSON{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
