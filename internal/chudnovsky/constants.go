package chudnovsky

import (
	"math"
	"math/big"
)

// Series constants. The term numerator is linear in k with coefficients
// LinearB (slope) and LinearA (intercept); the denominator carries powers of
// C³ together with one extra factor of C·sqrt(C).
const (
	// C is the Chudnovsky base constant 640320.
	C = 640320
	// LinearA is the constant part of the term numerator.
	LinearA = 13591409
	// LinearB is the k coefficient of the term numerator.
	LinearB = 545140134
	// C3Literal is 640320³ written out exactly. It is parsed rather than
	// computed so that it never passes through floating point.
	C3Literal = "262537412640768000"
)

// DigitsPerTerm is the number of correct decimal digits each additional term
// contributes, log10(C³/1728).
var DigitsPerTerm = math.Log10(262537412640768000.0 / 1728.0)

var (
	bigC  = big.NewInt(C)
	bigA  = big.NewInt(LinearA)
	bigB  = big.NewInt(LinearB)
	bigC3 = mustParseInt(C3Literal)
)

func mustParseInt(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("chudnovsky: invalid integer literal " + s)
	}
	return v
}

// C3 returns a fresh copy of 640320³.
func C3() *big.Int {
	return new(big.Int).Set(bigC3)
}

// TermsForDigits returns the number of series terms needed to obtain the given
// number of correct decimal digits. It always returns at least 1.
func TermsForDigits(digits uint64) uint64 {
	if digits == 0 {
		return 1
	}
	n := uint64(math.Ceil(float64(digits)/DigitsPerTerm)) + 1
	return n
}

// BitsForDigits returns the binary precision required to represent the given
// number of decimal digits, with a small guard.
func BitsForDigits(digits uint64) uint {
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + 64
}
