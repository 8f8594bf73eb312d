package ast

import (
	"numerus/internal/source"
)

type StmtKind uint8

const (
	StmtDecl StmtKind = iota
	StmtAssign
	StmtPrint
	StmtNoOp
)

func (k StmtKind) String() string {
	switch k {
	case StmtDecl:
		return "Declaration"
	case StmtAssign:
		return "Assignment"
	case StmtPrint:
		return "Print"
	case StmtNoOp:
		return "NoOp"
	default:
		return "Stmt(?)"
	}
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Kind() StmtKind
	Span() source.Span
}

// DeclStmt is DECLARA name EST init.
type DeclStmt struct {
	Name     string
	NameSpan source.Span
	Init     Expr
	Sp       source.Span
}

// AssignStmt is name EST value.
type AssignStmt struct {
	Name     string
	NameSpan source.Span
	Value    Expr
	Sp       source.Span
}

// PrintStmt is SCRIBE(expr).
type PrintStmt struct {
	Value Expr
	Sp    source.Span
}

// NoOpStmt is AVTEM.
type NoOpStmt struct {
	Sp source.Span
}

func (*DeclStmt) Kind() StmtKind   { return StmtDecl }
func (*AssignStmt) Kind() StmtKind { return StmtAssign }
func (*PrintStmt) Kind() StmtKind  { return StmtPrint }
func (*NoOpStmt) Kind() StmtKind   { return StmtNoOp }

func (s *DeclStmt) Span() source.Span   { return s.Sp }
func (s *AssignStmt) Span() source.Span { return s.Sp }
func (s *PrintStmt) Span() source.Span  { return s.Sp }
func (s *NoOpStmt) Span() source.Span   { return s.Sp }

// Program is a flat sequence of statements from one file.
type Program struct {
	File  source.FileID
	Stmts []Stmt
}
