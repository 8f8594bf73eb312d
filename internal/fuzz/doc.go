// Package fuzztests houses Go fuzz harnesses for the front end and the
// numeral codec. They guard against panics, hangs and broken span
// invariants on arbitrary inputs.
//
// Назначение: прогонять байты через FileSet, лексер, парсер и интерпретатор.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
