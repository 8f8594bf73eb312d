// Package diag defines the diagnostic model shared by every pipeline phase.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string form (LEX1001, SYN2003, ...).
//   - Message: human oriented text; keep it short and actionable.
//   - Primary: the source.Span pointing at the problem.
//   - Notes: optional secondary spans with extra context.
//   - Fixes: optional text edits, e.g. the canonical spelling of a numeral.
//
// # Emitting diagnostics
//
// Phases depend on the Reporter interface only. BagReporter collects into a
// Bag, which supports sorting, deduplication and filtering. ReportBuilder
// lets producers chain notes and fixes before calling Emit.
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
