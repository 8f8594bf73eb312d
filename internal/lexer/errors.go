package lexer

import (
	"numerus/internal/diag"
	"numerus/internal/source"
)

// LexError is the first lexical problem found by Tokenize.
type LexError struct {
	Code    diag.Code
	Span    source.Span
	Message string
	Fixes   []diag.Fix
}

func (e *LexError) Error() string {
	return e.Message
}

// Diagnostic converts the error for rendering.
func (e *LexError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message)
	d.Fixes = e.Fixes
	return d
}

// firstErrorReporter keeps the first error-level report.
type firstErrorReporter struct {
	err *LexError
}

func (r *firstErrorReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, _ []diag.Note, fixes []diag.Fix) {
	if sev < diag.SevError || r.err != nil {
		return
	}
	r.err = &LexError{Code: code, Span: primary, Message: msg, Fixes: fixes}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
}
