// Package roman converts between integers and canonical Roman numerals.
// Only the classical range 1..3999 is representable; input is case-sensitive.
package roman

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Min = 1
	Max = 3999
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("numeral out of range")
	// ErrInvalidNumeral is matched by every *NumeralError.
	ErrInvalidNumeral = errors.New("invalid roman numeral")
)

var table = [...]struct {
	value  int64
	symbol string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// RangeError reports a value that has no Roman form.
type RangeError struct {
	Value int64
}

func (e *RangeError) Error() string {
	if e.Value < Min {
		return fmt.Sprintf("%d has no roman form: numerals start at I", e.Value)
	}
	return fmt.Sprintf("%d has no roman form: maximum is MMMCMXCIX (%d)", e.Value, Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// Reason classifies why a numeral was rejected.
type Reason uint8

const (
	ReasonEmpty Reason = iota
	ReasonInvalidSymbol
	ReasonRepeatedFive
	ReasonTooManyRepeats
	ReasonBadSubtractive
	ReasonNonCanonical
)

// NumeralError reports a malformed numeral.
type NumeralError struct {
	Input     string
	Reason    Reason
	Symbol    rune   // offending symbol, when there is one
	Canonical string // canonical spelling for ReasonNonCanonical
}

func (e *NumeralError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "empty roman numeral"
	case ReasonInvalidSymbol:
		return fmt.Sprintf("%q is not a roman symbol in %q", e.Symbol, e.Input)
	case ReasonRepeatedFive:
		return fmt.Sprintf("symbol %c cannot repeat in %q", e.Symbol, e.Input)
	case ReasonTooManyRepeats:
		return fmt.Sprintf("symbol %c repeated more than three times in %q", e.Symbol, e.Input)
	case ReasonBadSubtractive:
		return fmt.Sprintf("invalid subtractive pair in %q", e.Input)
	case ReasonNonCanonical:
		return fmt.Sprintf("%q is not canonical, expected %q", e.Input, e.Canonical)
	default:
		return fmt.Sprintf("invalid roman numeral %q", e.Input)
	}
}

func (e *NumeralError) Is(target error) bool { return target == ErrInvalidNumeral }

// ToRoman renders n in canonical subtractive notation.
func ToRoman(n int64) (string, error) {
	if n < Min || n > Max {
		return "", &RangeError{Value: n}
	}
	var sb strings.Builder
	for _, e := range table {
		for n >= e.value {
			sb.WriteString(e.symbol)
			n -= e.value
		}
	}
	return sb.String(), nil
}

// MustToRoman is ToRoman for values already known to be in range.
func MustToRoman(n int64) string {
	s, err := ToRoman(n)
	if err != nil {
		panic(err)
	}
	return s
}

func symbolValue(r rune) int64 {
	switch r {
	case 'I':
		return 1
	case 'V':
		return 5
	case 'X':
		return 10
	case 'L':
		return 50
	case 'C':
		return 100
	case 'D':
		return 500
	case 'M':
		return 1000
	default:
		return 0
	}
}

func validSubtractive(small, large int64) bool {
	switch {
	case small == 1:
		return large == 5 || large == 10
	case small == 10:
		return large == 50 || large == 100
	case small == 100:
		return large == 500 || large == 1000
	default:
		return false
	}
}

// FromRoman parses a canonical Roman numeral.
func FromRoman(s string) (int64, error) {
	if s == "" {
		return 0, &NumeralError{Input: s, Reason: ReasonEmpty}
	}
	runes := []rune(s)

	var (
		total  int64
		prev   int64
		run    = 1
		prevCh rune
	)
	// справа налево, как при ручном подсчёте
	for i := len(runes) - 1; i >= 0; i-- {
		ch := runes[i]
		v := symbolValue(ch)
		if v == 0 {
			return 0, &NumeralError{Input: s, Reason: ReasonInvalidSymbol, Symbol: ch}
		}
		if ch == prevCh {
			run++
			switch ch {
			case 'V', 'L', 'D':
				return 0, &NumeralError{Input: s, Reason: ReasonRepeatedFive, Symbol: ch}
			}
			if run > 3 {
				return 0, &NumeralError{Input: s, Reason: ReasonTooManyRepeats, Symbol: ch}
			}
		} else {
			run = 1
		}

		if v < prev {
			if !validSubtractive(v, prev) {
				return 0, &NumeralError{Input: s, Reason: ReasonBadSubtractive, Symbol: ch}
			}
			total -= v
		} else {
			total += v
		}
		prev = v
		prevCh = ch
	}

	canonical, err := ToRoman(total)
	if err != nil || canonical != s {
		return 0, &NumeralError{Input: s, Reason: ReasonNonCanonical, Canonical: canonical}
	}
	return total, nil
}

// IsRomanSymbols reports whether s is non-empty and made only of I V X L C D M.
func IsRomanSymbols(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if symbolValue(r) == 0 {
			return false
		}
	}
	return true
}
