package parallel

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

// TestErrorCollectorFirstWorkerErrorWins simulates a batch of term workers
// failing at once and checks that exactly one failure is kept.
func TestErrorCollectorFirstWorkerErrorWins(t *testing.T) {
	for round := 0; round < 20; round++ {
		var ec ErrorCollector
		var wg sync.WaitGroup
		numGoroutines := 256
		barrier := make(chan struct{})

		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			go func(id int) {
				defer wg.Done()
				<-barrier
				ec.SetError(fmt.Errorf("term worker %d: canceled", id))
			}(i)
		}

		close(barrier)
		wg.Wait()

		err := ec.Err()
		if err == nil {
			t.Fatalf("round %d: expected an error, got nil", round)
		}

		if !strings.HasPrefix(err.Error(), "term worker ") {
			t.Errorf("round %d: unexpected error format: %v", round, err)
		}
	}
}

// TestErrorCollectorNilIgnored checks that successful workers reporting nil
// never mask a failing one.
func TestErrorCollectorNilIgnored(t *testing.T) {
	var ec ErrorCollector
	var wg sync.WaitGroup

	wg.Add(1000)
	barrier := make(chan struct{})

	for i := 0; i < 500; i++ {
		go func() {
			defer wg.Done()
			<-barrier
			ec.SetError(nil)
		}()
	}
	for i := 0; i < 500; i++ {
		go func(id int) {
			defer wg.Done()
			<-barrier
			ec.SetError(fmt.Errorf("pool task %d failed", id))
		}(i)
	}

	close(barrier)
	wg.Wait()

	err := ec.Err()
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "pool task ") {
		t.Errorf("unexpected error: %v", err)
	}
}
