// Package roman formats integers as Latin numerals.
package roman

import (
	"strconv"
	"strings"
)

var numerals = []struct {
	value  int
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

// ToRoman converts n to subtractive Roman notation.
// Non-positive values have no numeral and are returned in decimal.
func ToRoman(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var out strings.Builder
	for _, p := range numerals {
		for n >= p.value {
			out.WriteString(p.symbol)
			n -= p.value
		}
	}
	return out.String()
}
