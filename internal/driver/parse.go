package driver

import (
	"numerus/internal/ast"
	"numerus/internal/diag"
	"numerus/internal/lexer"
	"numerus/internal/parser"
	"numerus/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
}

// Parse lexes and parses the file at path, recovering at statement boundaries.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	tokens := lexer.New(file, lexer.Options{Reporter: reporter}).All()
	prog := parser.ParseRecover(tokens, reporter)
	bag.Sort()

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Program: prog,
		Bag:     bag,
	}, nil
}
