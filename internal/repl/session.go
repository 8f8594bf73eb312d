package repl

import (
	"fmt"
	"io"
	"strings"

	"numerus/internal/diagfmt"
	"numerus/internal/interp"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/source"
)

// Command is a session keyword typed in place of a statement.
type Command uint8

const (
	CmdNone Command = iota
	CmdExit
	CmdHelp
	CmdVariables
)

// ParseCommand recognises EXITUS, AUXILIUM and VARIABILES in any letter case.
func ParseCommand(line string) Command {
	switch word := strings.TrimSpace(line); {
	case strings.EqualFold(word, "EXITUS"):
		return CmdExit
	case strings.EqualFold(word, "AUXILIUM"):
		return CmdHelp
	case strings.EqualFold(word, "VARIABILES"):
		return CmdVariables
	default:
		return CmdNone
	}
}

type Options struct {
	Numerals interp.NumeralStyle
	Color    bool
}

// Session keeps one interpreter alive across input lines.
type Session struct {
	in     *interp.Interpreter
	fs     *source.FileSet
	opts   Options
	chunks int
}

// Result is what one input line produced.
type Result struct {
	Command Command
	Output  []string
	Err     error
}

func (r Result) Quit() bool { return r.Command == CmdExit }

func NewSession(opts Options) *Session {
	return &Session{
		in:   interp.New(interp.Options{Numerals: opts.Numerals}),
		fs:   source.NewFileSet(),
		opts: opts,
	}
}

// Exec runs one line. Each line is registered as its own virtual file so
// error positions point into it.
func (s *Session) Exec(line string) Result {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Result{}
	}
	switch cmd := ParseCommand(trimmed); cmd {
	case CmdExit:
		return Result{Command: cmd}
	case CmdHelp:
		return Result{Command: cmd, Output: HelpLines()}
	case CmdVariables:
		return Result{Command: cmd, Output: s.Variables()}
	}

	s.chunks++
	name := fmt.Sprintf("<repl:%d>", s.chunks)
	file := s.fs.Get(s.fs.AddVirtual(name, []byte(trimmed+"\n")))

	toks, err := lexer.Tokenize(file)
	if err != nil {
		return Result{Err: err}
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		return Result{Err: err}
	}
	out, err := s.in.Run(prog)
	return Result{Output: out, Err: err}
}

// Variables lists the bound names with their current values.
func (s *Session) Variables() []string {
	env := s.in.Env()
	if env.Len() == 0 {
		return []string{"(nullae variabiles)"}
	}
	style := s.in.Options().Numerals
	lines := make([]string, 0, env.Len())
	for _, name := range env.Names() {
		v, err := env.Get(name)
		if err != nil {
			continue
		}
		lines = append(lines, name+" = "+v.Inspect(style))
	}
	return lines
}

// RenderError writes err with its source line and caret underline.
func (s *Session) RenderError(w io.Writer, err error, color bool) {
	opts := diagfmt.PrettyOpts{Color: color, ShowNotes: true, ShowFixes: true}
	if !diagfmt.RenderError(w, err, s.fs, opts) {
		fmt.Fprintf(w, "ERRATUM: %v\n", err)
	}
}
