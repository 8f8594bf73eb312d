// Package trace provides structured tracing for the numerus toolchain.
//
// Tracing shows where time goes between loading a file, lexing, parsing,
// the semantic pass and evaluation.
//
// # Usage
//
//	numerus check --trace=- --trace-level=phase prog.npp
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Only failures
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-file events of multi-file checks
//   - LevelDebug: Everything including per-statement events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
