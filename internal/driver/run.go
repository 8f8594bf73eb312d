package driver

import (
	"context"
	"fmt"
	"io"

	"numerus/internal/interp"
	"numerus/internal/lexer"
	"numerus/internal/observ"
	"numerus/internal/parser"
	"numerus/internal/source"
	"numerus/internal/trace"
)

// RunOptions configure program execution.
type RunOptions struct {
	Numerals interp.NumeralStyle
	// Stdout receives output lines as they are printed.
	Stdout        io.Writer
	EnableTimings bool
}

// RunResult carries what is needed to render a failure next to the output.
type RunResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Output  []string
	Timer   *observ.Timer
}

// Run executes the file at path. Lexical, syntax and runtime failures come
// back as *lexer.LexError, *parser.SyntaxError and *interp.RuntimeError;
// the result is non-nil whenever the file could be loaded.
func Run(ctx context.Context, path string, opts RunOptions) (*RunResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.End(path)

	res := &RunResult{Path: path, FileSet: source.NewFileSet()}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	loadIdx := res.Timer.Begin("load")
	fileID, err := res.FileSet.Load(path)
	res.Timer.End(loadIdx, "")
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}
	res.File = res.FileSet.Get(fileID)
	return res, execute(ctx, res, opts)
}

// RunSource executes in-memory content registered under name.
func RunSource(ctx context.Context, name string, content []byte, opts RunOptions) (*RunResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "run")
	defer span.End(name)

	res := &RunResult{Path: name, FileSet: source.NewFileSet()}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	res.File = res.FileSet.Get(res.FileSet.AddVirtual(name, content))
	return res, execute(ctx, res, opts)
}

func execute(ctx context.Context, res *RunResult, opts RunOptions) error {
	timer := res.Timer

	_, lexSpan := trace.Start(ctx, trace.ScopePass, "lex")
	lexIdx := timer.Begin("lex")
	toks, err := lexer.Tokenize(res.File)
	timer.End(lexIdx, "")
	lexSpan.End("")
	if err != nil {
		return err
	}

	_, parseSpan := trace.Start(ctx, trace.ScopePass, "parse")
	parseIdx := timer.Begin("parse")
	prog, err := parser.Parse(toks)
	timer.End(parseIdx, "")
	parseSpan.End("")
	if err != nil {
		return err
	}

	evalCtx, evalSpan := trace.Start(ctx, trace.ScopePass, "eval")
	defer evalSpan.End("")
	evalIdx := timer.Begin("eval")
	defer func() { timer.End(evalIdx, fmt.Sprintf("lines=%d", len(res.Output))) }()

	tracer := trace.FromContext(evalCtx)
	in := interp.New(interp.Options{Numerals: opts.Numerals, Stdout: opts.Stdout})
	for _, stmt := range prog.Stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		trace.Point(tracer, trace.ScopeNode, stmt.Kind().String(), stmt.Span().String(), trace.CurrentSpan(evalCtx))
		lines, err := in.Exec(stmt)
		res.Output = append(res.Output, lines...)
		if err != nil {
			return err
		}
	}
	return nil
}
