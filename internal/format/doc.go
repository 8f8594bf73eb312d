// Package format rewrites Numerus++ source into its canonical layout.
//
// Назначение: одна инструкция на строку, одиночные пробелы между словами,
// без пробелов внутри скобок, комментарии NOTA: сохраняются.
// Не делает: IO и обход каталогов (это driver.FormatPaths).
// Зависимости: internal/lexer, internal/parser, internal/roman.
package format
