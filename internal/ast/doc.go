// Package ast defines the syntax tree produced by the parser.
//
// The tree owns its children exclusively: there is no sharing and no cycles.
// Every node carries the span of the tokens it was built from so that the
// evaluator and the checker can point at the exact source range.
package ast
