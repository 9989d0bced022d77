package chudnovsky

import "math/big"

var bigOne = big.NewInt(1)

// Factorial returns n! as an exact integer. Values below 2, including
// negative n, yield 1. The argument is never modified.
//
// The product is formed iteratively, multiplying an accumulator by n, n-1,
// ..., 2. It is intended for the moderate arguments the series needs (6k for
// the largest k in a run); no binary splitting is attempted.
func Factorial(n *big.Int) *big.Int {
	result := big.NewInt(1)
	if n.Cmp(big.NewInt(2)) < 0 {
		return result
	}
	i := new(big.Int).Set(n)
	for i.Cmp(bigOne) > 0 {
		result.Mul(result, i)
		i.Sub(i, bigOne)
	}
	return result
}

// FactorialUint64 is Factorial for machine-sized arguments.
func FactorialUint64(n uint64) *big.Int {
	result := big.NewInt(1)
	if n < 2 {
		return result
	}
	var f big.Int
	for i := n; i > 1; i-- {
		result.Mul(result, f.SetUint64(i))
	}
	return result
}
