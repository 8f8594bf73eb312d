package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"numerus/internal/diag"
	"numerus/internal/source"
)

// Diagnoser is implemented by every front-end error type.
type Diagnoser interface {
	Diagnostic() diag.Diagnostic
}

type palette struct {
	err, warn, info, note, help, gutter, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		help:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.help, p.gutter, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	PrettyDiagnostics(w, bag.Items(), fs, opts)
}

// PrettyDiagnostics renders a slice of diagnostics in order.
func PrettyDiagnostics(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w) //nolint:errcheck
		}
		prettyOne(w, &items[i], fs, opts, p)
	}
}

// RenderError prints err through the pretty renderer when it carries a
// diagnostic and reports whether it did.
func RenderError(w io.Writer, err error, fs *source.FileSet, opts PrettyOpts) bool {
	var d Diagnoser
	if err == nil || !errors.As(err, &d) {
		return false
	}
	diagnostic := d.Diagnostic()
	prettyOne(w, &diagnostic, fs, opts, newPalette(opts.Color))
	return true
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(f, opts.PathMode, opts.BaseDir)

	fmt.Fprintf(w, "%s: %s %s: %s\n", //nolint:errcheck
		p.bold.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		p.bold.Sprint(d.Message))

	writeSnippet(w, f, d.Primary, opts.Context, p, p.severity(d.Severity))

	if opts.ShowNotes {
		for _, note := range d.Notes {
			pos, _ := fs.Resolve(note.Span)
			notePath := formatPath(fs.Get(note.Span.File), opts.PathMode, opts.BaseDir)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("= note:"), notePath, pos.Line, pos.Col, note.Msg) //nolint:errcheck
		}
	}
	if opts.ShowFixes {
		for _, fix := range d.Fixes {
			fmt.Fprintf(w, "  %s %s\n", p.help.Sprint("= help:"), fix.Title) //nolint:errcheck
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int8, p palette, mark *color.Color) {
	start, end := f.Resolve(sp)
	first := start.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	gutterWidth := len(fmt.Sprint(start.Line))
	blank := strings.Repeat(" ", gutterWidth)

	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), expandTabs(f.GetLine(ln))) //nolint:errcheck
	}

	line := expandTabs(f.GetLine(start.Line))
	prefix := takeRunes(line, int(start.Col)-1)
	var marked string
	if end.Line == start.Line && end.Col > start.Col {
		marked = takeRunes(line[len(prefix):], int(end.Col-start.Col))
	} else if end.Line > start.Line {
		marked = line[len(prefix):]
	}
	width := runewidth.StringWidth(marked)
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, " %s %s%s\n", //nolint:errcheck
		p.gutter.Sprintf("%s |", blank),
		strings.Repeat(" ", runewidth.StringWidth(prefix)),
		mark.Sprint(underline))
}

// takeRunes returns the prefix of s holding at most n runes.
func takeRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for n > 0 && i < len(s) {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n--
	}
	return s[:i]
}

// Tabs render as a single space so the caret stays aligned with rune columns.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", " ")
}
