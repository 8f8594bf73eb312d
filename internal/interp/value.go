package interp

import (
	"strconv"
)

type ValueKind uint8

const (
	KindNumber ValueKind = iota
	KindString
)

func (k ValueKind) String() string {
	if k == KindString {
		return "string"
	}
	return "number"
}

// Value is a runtime number or string.
type Value struct {
	Kind ValueKind
	Num  int64
	Str  string
}

func Number(n int64) Value { return Value{Kind: KindNumber, Num: n} }

func String(s string) Value { return Value{Kind: KindString, Str: s} }

func (v Value) IsNumber() bool { return v.Kind == KindNumber }

// Inspect renders the value for debugging listings (REPL VARIABILES).
func (v Value) Inspect(style NumeralStyle) string {
	if v.Kind == KindString {
		return strconv.Quote(v.Str)
	}
	return style.Format(v.Num)
}
