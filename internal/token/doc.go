// Package token defines lexical token kinds and trivia for the Numerus language.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Keywords are upper case and case-sensitive; they are resolved once by the lexer.
//   - Newlines are significant and appear in the main stream as Newline tokens.
//   - Comments (NOTA: ...) and spaces are leading Trivia and never appear
//     in the main token stream.
//   - A NumberLit carries its resolved value regardless of the written form.
package token
