package engine

import (
	"math/big"
	"math/rand"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/picalc/internal/chudnovsky"
)

func TestAccumulatorConcurrentAdd(t *testing.T) {
	t.Parallel()
	acc := NewAccumulator(64)
	one := big.NewFloat(1)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				acc.Add(one)
			}
		}()
	}
	wg.Wait()

	if acc.Count() != 1000 {
		t.Errorf("Count() = %d, want 1000", acc.Count())
	}
	if f, _ := acc.Sum().Float64(); f != 1000 {
		t.Errorf("Sum() = %v, want 1000", f)
	}
}

func TestAccumulatorSumIsCopy(t *testing.T) {
	t.Parallel()
	acc := NewAccumulator(64)
	acc.Add(big.NewFloat(2))
	s := acc.Sum()
	s.Add(s, big.NewFloat(5))
	if f, _ := acc.Sum().Float64(); f != 2 {
		t.Errorf("mutating Sum() result changed the accumulator: %v", f)
	}
}

// TestFoldOrderInvariance sums the same terms in random orders and checks the
// results agree within Tolerance.
func TestFoldOrderInvariance(t *testing.T) {
	const (
		prec = 768
		n    = 40
	)
	eval := chudnovsky.NewEvaluator(prec, nil)
	terms := make([]*big.Float, n)
	for k := range terms {
		terms[k] = eval.Term(uint64(k))
	}
	inOrder := NewAccumulator(prec)
	for _, term := range terms {
		inOrder.Add(term)
	}
	reference := inOrder.Sum()
	tol := Tolerance(prec, n)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("permuted sums agree within tolerance", prop.ForAll(
		func(seed int64) bool {
			acc := NewAccumulator(prec)
			for _, i := range rand.New(rand.NewSource(seed)).Perm(n) {
				acc.Add(terms[i])
			}
			return MatchingBits(reference, acc.Sum()) >= tol
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
