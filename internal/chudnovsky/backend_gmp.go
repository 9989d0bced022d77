//go:build gmp

// GMP integer backend, compiled only with -tags=gmp. It requires libgmp
// (libgmp-dev on Debian/Ubuntu, brew install gmp on macOS).

package chudnovsky

import (
	"math/big"

	"github.com/ncw/gmp"
)

// GMPBackendName is the registry name of the libgmp backend.
const GMPBackendName = "gmp"

func init() {
	RegisterBackend(GMPBackend{})
}

// GMPBackend computes term parts with libgmp and converts the results to
// math/big so the float stage is shared with the default backend.
type GMPBackend struct{}

// Name returns "gmp".
func (GMPBackend) Name() string { return GMPBackendName }

// TermParts implements IntBackend.
func (GMPBackend) TermParts(k uint64) (*big.Int, *big.Int) {
	kk := new(gmp.Int).SetUint64(k)

	num := gmpFactorial(6 * k)
	linear := new(gmp.Int).SetUint64(LinearB)
	linear.Mul(linear, kk)
	linear.Add(linear, gmp.NewInt(LinearA))
	num.Mul(num, linear)

	c3 := new(gmp.Int)
	c3.SetString(C3Literal, 10)
	den := new(gmp.Int).Exp(c3, kk, nil)
	den.Mul(den, gmp.NewInt(C))
	kf := gmpFactorial(k)
	cube := new(gmp.Int).Mul(kf, kf)
	cube.Mul(cube, kf)
	den.Mul(den, cube)
	den.Mul(den, gmpFactorial(3*k))

	n := gmpToBig(num)
	if k&1 == 1 {
		n.Neg(n)
	}
	return n, gmpToBig(den)
}

func gmpFactorial(n uint64) *gmp.Int {
	result := gmp.NewInt(1)
	if n < 2 {
		return result
	}
	var f gmp.Int
	for i := n; i > 1; i-- {
		result.Mul(result, f.SetUint64(i))
	}
	return result
}

// gmpToBig converts a non-negative gmp.Int to a big.Int.
func gmpToBig(g *gmp.Int) *big.Int {
	return new(big.Int).SetBytes(g.Bytes())
}
