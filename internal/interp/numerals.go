package interp

import (
	"fmt"
	"strconv"
	"strings"

	"numerus/internal/roman"
)

// NumeralStyle selects how numbers are displayed by SCRIBE and string coercion.
type NumeralStyle uint8

const (
	// StyleRoman prints 1..3999 as Roman numerals and anything else in decimal.
	StyleRoman NumeralStyle = iota
	// StyleArabic always prints decimal.
	StyleArabic
)

func (s NumeralStyle) String() string {
	if s == StyleArabic {
		return "arabic"
	}
	return "roman"
}

// ParseNumeralStyle accepts "roman" or "arabic" (case-insensitive).
func ParseNumeralStyle(s string) (NumeralStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "roman":
		return StyleRoman, nil
	case "arabic":
		return StyleArabic, nil
	default:
		return StyleRoman, fmt.Errorf("unknown numeral style %q (want roman or arabic)", s)
	}
}

// Format renders n for display. It never fails.
func (s NumeralStyle) Format(n int64) string {
	if s == StyleRoman {
		if r, err := roman.ToRoman(n); err == nil {
			return r
		}
	}
	return strconv.FormatInt(n, 10)
}
