package parallel

import (
	"sync"
	"testing"
)

func TestIndexDispenserEachIndexOnce(t *testing.T) {
	t.Parallel()
	const limit = 10_000
	d := NewIndexDispenser(limit)

	seen := make([]int32, limit)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i, ok := d.Claim()
				if !ok {
					return
				}
				mu.Lock()
				seen[i]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d claimed %d times", i, n)
		}
	}
	if d.Claimed() != limit {
		t.Errorf("Claimed() = %d, want %d", d.Claimed(), limit)
	}
}

func TestIndexDispenserEmpty(t *testing.T) {
	t.Parallel()
	d := NewIndexDispenser(0)
	if _, ok := d.Claim(); ok {
		t.Fatal("empty dispenser returned an index")
	}
	if d.Claimed() != 0 {
		t.Errorf("Claimed() = %d, want 0", d.Claimed())
	}
}

func TestIndexDispenserOrder(t *testing.T) {
	t.Parallel()
	d := NewIndexDispenser(3)
	for want := uint64(0); want < 3; want++ {
		got, ok := d.Claim()
		if !ok || got != want {
			t.Fatalf("Claim() = %d, %v; want %d, true", got, ok, want)
		}
	}
	if _, ok := d.Claim(); ok {
		t.Fatal("expected exhaustion")
	}
}
