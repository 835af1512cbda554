package roman

import (
	"strconv"
	"testing"
)

func TestToRoman(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1, "I"},
		{3, "III"},
		{4, "IV"},
		{9, "IX"},
		{14, "XIV"},
		{40, "XL"},
		{90, "XC"},
		{400, "CD"},
		{444, "CDXLIV"},
		{1994, "MCMXCIV"},
		{3999, "MMMCMXCIX"},
	}

	for _, tc := range tests {
		if got := ToRoman(tc.in); got != tc.want {
			t.Fatalf("ToRoman(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToRomanNonPositiveIsDecimal(t *testing.T) {
	for _, n := range []int{0, -1, -42, -1994} {
		if got := ToRoman(n); got != strconv.Itoa(n) {
			t.Fatalf("ToRoman(%d) = %q, want decimal form", n, got)
		}
	}
}
