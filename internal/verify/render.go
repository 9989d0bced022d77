package verify

import (
	"math"
	"math/big"
)

// DecimalPlaces returns the number of decimals a binary precision can
// support, floor(prec·log10 2) - 1, and at least 1.
func DecimalPlaces(prec uint) int {
	n := int(math.Floor(float64(prec)*math.Log10(2))) - 1
	if n < 1 {
		return 1
	}
	return n
}

// Render formats pi as fixed-point decimal text, "3." followed by
// DecimalPlaces(pi.Prec()) digits.
func Render(pi *big.Float) string {
	return pi.Text('f', DecimalPlaces(pi.Prec()))
}

// DigitsComputed returns the number of decimals in a rendered value, its
// length minus the leading "3.".
func DigitsComputed(s string) int {
	if len(s) < 2 {
		return 0
	}
	return len(s) - 2
}
