package lsp

import (
	"path/filepath"

	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/driver"
	"numerus/internal/interp"
	"numerus/internal/project"
	"numerus/internal/token"
)

type document struct {
	uri     string
	path    string
	version int
	text    string
	// result is the latest analysis of text
	result *driver.CheckResult
	// manifest is the numerus.toml above path, if any
	manifest *project.Manifest
}

func newDocument(uri string, version int, text string) *document {
	doc := &document{uri: uri, path: uriToPath(uri), version: version, text: text}
	if doc.path != "" {
		if m, ok, err := project.LoadManifest(filepath.Dir(doc.path)); err == nil && ok {
			doc.manifest = m
		}
	}
	return doc
}

func (d *document) name() string {
	if d.path != "" {
		return d.path
	}
	return d.uri
}

// refresh re-analyses doc and publishes its diagnostics.
func (s *Server) refresh(doc *document) error {
	s.mu.Lock()
	text, version := doc.text, doc.version
	unused := s.settings.Unused != nil && *s.settings.Unused
	maxDiagnostics := s.maxDiagnostics
	if doc.manifest != nil {
		maxDiagnostics = doc.manifest.MaxDiagnostics()
	}
	s.mu.Unlock()

	res, err := driver.CheckSource(s.baseCtx, doc.name(), []byte(text), driver.CheckOptions{
		Stage:          driver.StageAll,
		MaxDiagnostics: maxDiagnostics,
		ReportUnused:   unused,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	doc.result = res
	s.mu.Unlock()
	return s.sendPublish(doc.uri, &version, toLSPDiagnostics(doc.uri, res))
}

func toLSPDiagnostics(uri string, res *driver.CheckResult) []lspDiagnostic {
	items := res.Bag.Items()
	out := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		ld := lspDiagnostic{
			Range:    spanRange(res.File, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "numerus",
			Message:  d.Message,
		}
		for _, note := range d.Notes {
			ld.RelatedInformation = append(ld.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: spanRange(res.File, note.Span)},
				Message:  note.Msg,
			})
		}
		out = append(out, ld)
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

// numerals resolves the display style: client settings, then the manifest.
func (s *Server) numerals(doc *document) interp.NumeralStyle {
	s.mu.Lock()
	setting := s.settings.Numerals
	s.mu.Unlock()
	if setting == "" {
		setting = doc.manifest.Numerals()
	}
	style, err := interp.ParseNumeralStyle(setting)
	if err != nil {
		return interp.StyleRoman
	}
	return style
}

// tokenAt returns the significant token covering off. A cursor just past
// the end of a word still selects it.
func tokenAt(toks []token.Token, off uint32) (token.Token, bool) {
	var touching token.Token
	found := false
	for _, tok := range toks {
		if tok.Kind == token.Newline || tok.Kind == token.EOF {
			continue
		}
		if tok.Span.Start <= off && off < tok.Span.End {
			return tok, true
		}
		if tok.Span.End == off && !found {
			touching, found = tok, true
		}
	}
	return touching, found
}

// declarationOf finds the first DECLARA of name.
func declarationOf(prog *ast.Program, name string) *ast.DeclStmt {
	if prog == nil {
		return nil
	}
	for _, st := range prog.Stmts {
		if decl, ok := st.(*ast.DeclStmt); ok && decl.Name == name {
			return decl
		}
	}
	return nil
}
