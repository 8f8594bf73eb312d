package format

import (
	"bytes"

	"numerus/internal/source"
)

// Writer accumulates formatted output line by line.
type Writer struct {
	sf          *source.File
	buf         []byte
	atLineStart bool
	blankLines  int
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:          sf,
		buf:         make([]byte, 0, len(sf.Content)),
		atLineStart: true,
	}
}

// Bytes returns the output with exactly one trailing newline, or nothing
// for an empty program.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, "\n")
	if len(out) == 0 {
		return []byte{}
	}
	return append(out, '\n')
}

// WriteString writes s on the current line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
	w.blankLines = 0
}

// Space writes a single space unless the line is empty or already ends with one.
func (w *Writer) Space() {
	if w.atLineStart || len(w.buf) == 0 || w.buf[len(w.buf)-1] == ' ' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline ends the current line. An empty line is kept only once in a row
// and never at the top of the output.
func (w *Writer) Newline() {
	if w.atLineStart {
		if len(w.buf) == 0 || w.blankLines > 0 {
			return
		}
		w.blankLines++
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// CopySpan copies source text covered by sp, trimming surrounding whitespace.
func (w *Writer) CopySpan(sp source.Span) {
	if w.sf == nil || sp.File != w.sf.ID || sp.End < sp.Start || int(sp.End) > len(w.sf.Content) {
		return
	}
	trimmed := bytes.TrimSpace(w.sf.Content[sp.Start:sp.End])
	w.WriteString(string(trimmed))
}
