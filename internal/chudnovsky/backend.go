package chudnovsky

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
)

// IntBackend produces the exact integer parts of a series term.
//
// TermParts returns the signed numerator (-1)^k·(6k)!·(B·k + A) and the
// positive denominator core (C³)^k·C·(k!)³·(3k)!. Implementations must be
// safe for concurrent use and must return values the caller may keep.
type IntBackend interface {
	Name() string
	TermParts(k uint64) (num, den *big.Int)
}

// DefaultBackend is the name of the math/big backend.
const DefaultBackend = "big"

var (
	backendsMu sync.RWMutex
	backends   = map[string]IntBackend{DefaultBackend: BigBackend{}}
)

// RegisterBackend makes an integer backend available by name. It is called
// from init functions of optional backends.
func RegisterBackend(b IntBackend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b.Name()] = b
}

// Backend looks up a registered backend.
func Backend(name string) (IntBackend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	if name == "" {
		name = DefaultBackend
	}
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown integer backend %q (available: %v)", name, backendNamesLocked())
	}
	return b, nil
}

// BackendNames returns the registered backend names, sorted.
func BackendNames() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return backendNamesLocked()
}

func backendNamesLocked() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BigBackend computes term parts with math/big.
type BigBackend struct{}

// Name returns "big".
func (BigBackend) Name() string { return DefaultBackend }

// TermParts implements IntBackend.
func (BigBackend) TermParts(k uint64) (*big.Int, *big.Int) {
	kk := new(big.Int).SetUint64(k)

	num := FactorialUint64(6 * k)
	linear := new(big.Int).Mul(bigB, kk)
	linear.Add(linear, bigA)
	num.Mul(num, linear)
	if k&1 == 1 {
		num.Neg(num)
	}

	den := new(big.Int).Exp(bigC3, kk, nil)
	den.Mul(den, bigC)
	kf := FactorialUint64(k)
	cube := new(big.Int).Mul(kf, kf)
	cube.Mul(cube, kf)
	den.Mul(den, cube)
	den.Mul(den, FactorialUint64(3*k))
	return num, den
}
