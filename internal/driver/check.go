package driver

import (
	"context"
	"fmt"

	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/lexer"
	"numerus/internal/observ"
	"numerus/internal/parser"
	"numerus/internal/sema"
	"numerus/internal/source"
	"numerus/internal/token"
	"numerus/internal/trace"
)

// CheckOptions содержит опции для проверки
type CheckOptions struct {
	Stage            Stage
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// ReportUnused adds infos for variables that are never read.
	ReportUnused  bool
	EnableTimings bool
	// Cache, when set, short-circuits files whose content was checked before.
	Cache *DiskCache
}

// CheckResult is the outcome of checking one file. Tokens, Program and Sema
// are nil when the result came from the cache or the stage skipped them.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Program *ast.Program
	Sema    *sema.Result
	Bag     *diag.Bag
	Timer   *observ.Timer
	Cached  bool
}

// HasErrors reports whether the bag holds an error-severity diagnostic.
func (r *CheckResult) HasErrors() bool { return r != nil && r.Bag.HasErrors() }

// Check loads path and reports its diagnostics without executing it.
// The only error returned is context cancellation; I/O failures become diagnostics.
func Check(ctx context.Context, path string, opts CheckOptions) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.End(path)

	timer := newTimer(opts)
	fs := source.NewFileSet()
	loadIdx := timer.Begin("load")
	fileID, loadDiag := loadFile(fs, path)
	timer.End(loadIdx, "")

	if loadDiag != nil {
		res := newCheckResult(path, fs, fileID, opts, timer)
		res.Bag.Add(*loadDiag)
		finish(res.Bag, opts)
		return res, nil
	}
	return checkLoaded(ctx, path, fs, fileID, opts, timer), nil
}

// CheckSource checks in-memory content registered under name.
func CheckSource(ctx context.Context, name string, content []byte, opts CheckOptions) (*CheckResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "check")
	defer span.End(name)

	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return checkLoaded(ctx, name, fs, fileID, opts, newTimer(opts)), nil
}

func newTimer(opts CheckOptions) *observ.Timer {
	if !opts.EnableTimings {
		return nil
	}
	return observ.NewTimer()
}

func newCheckResult(path string, fs *source.FileSet, id source.FileID, opts CheckOptions, timer *observ.Timer) *CheckResult {
	return &CheckResult{
		Path:    path,
		FileSet: fs,
		File:    fs.Get(id),
		// лимит применяется в finish, после сортировки
		Bag:     diag.NewBag(0),
		Timer:   timer,
	}
}

func checkLoaded(ctx context.Context, path string, fs *source.FileSet, fileID source.FileID, opts CheckOptions, timer *observ.Timer) *CheckResult {
	res := newCheckResult(path, fs, fileID, opts, timer)
	file := res.File
	key := cacheKey(file, opts)

	if opts.Cache != nil {
		if hit, ok := opts.Cache.lookup(key, fileID); ok {
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", "hit", trace.CurrentSpan(ctx))
			for _, d := range hit {
				res.Bag.Add(d)
			}
			res.Cached = true
			finish(res.Bag, opts)
			return res
		}
	}

	counter := &diag.CountingReporter{Next: diag.BagReporter{Bag: res.Bag}}

	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	lexIdx := timer.Begin("lex")
	res.Tokens = lexer.New(file, lexer.Options{Reporter: counter}).All()
	timer.End(lexIdx, fmt.Sprintf("tokens=%d", len(res.Tokens)))
	lexSpan.End("")

	if opts.Stage.parses() {
		_, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
		parseIdx := timer.Begin("parse")
		res.Program = parser.ParseRecover(res.Tokens, counter)
		timer.End(parseIdx, fmt.Sprintf("stmts=%d", len(res.Program.Stmts)))
		parseSpan.End("")
	}

	if opts.Stage.parses() && opts.Stage.runsSema() && counter.Errors == 0 {
		_, semaSpan := trace.Start(ctx, trace.ScopePass, "sema")
		semaIdx := timer.Begin("sema")
		semaRes := sema.Check(res.Program, sema.Options{Reporter: counter, ReportUnused: opts.ReportUnused})
		res.Sema = &semaRes
		timer.End(semaIdx, fmt.Sprintf("vars=%d", len(semaRes.Declared)))
		semaSpan.End("")
	}

	res.Bag.Sort()
	if opts.Cache != nil {
		if err := opts.Cache.store(key, path, res.Bag.Items()); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopePass, "cache", "store failed: "+err.Error(), trace.CurrentSpan(ctx))
		}
	}
	finish(res.Bag, opts)
	return res
}

// finish sorts the bag, applies the severity policy and then the
// diagnostics limit, so the limit keeps the earliest positions.
func finish(bag *diag.Bag, opts CheckOptions) {
	bag.Sort()
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool { return d.Severity >= diag.SevError })
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	bag.Truncate(opts.MaxDiagnostics)
}
