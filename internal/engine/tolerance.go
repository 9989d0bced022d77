package engine

import (
	"math/big"
	"math/bits"
)

// Tolerance is the number of leading bits two runs with the same precision
// and iteration count must share, whatever their fold order: prec minus
// ceil(log2 n), at least 1.
func Tolerance(prec uint, iterations uint64) int {
	t := int(prec) - ceilLog2(iterations)
	if t < 1 {
		return 1
	}
	return t
}

func ceilLog2(n uint64) int {
	if n <= 1 {
		return 0
	}
	return bits.Len64(n - 1)
}

// MatchingBits returns how many leading bits of a and b agree, measured as
// the exponent gap between a and |a-b|. Equal values return the larger of
// the two precisions.
func MatchingBits(a, b *big.Float) int {
	prec := a.Prec()
	if b.Prec() > prec {
		prec = b.Prec()
	}
	if a.Cmp(b) == 0 {
		return int(prec)
	}
	if a.Sign() == 0 || b.Sign() == 0 || a.Sign() != b.Sign() {
		return 0
	}
	diff := new(big.Float).SetPrec(prec + 64).Sub(a, b)
	diff.Abs(diff)
	n := a.MantExp(nil) - diff.MantExp(nil)
	if n < 0 {
		return 0
	}
	if n > int(prec) {
		return int(prec)
	}
	return n
}
