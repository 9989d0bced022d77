package chudnovsky

import (
	"math/big"
	"testing"
)

func TestBackendLookup(t *testing.T) {
	t.Parallel()
	b, err := Backend("")
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	if b.Name() != DefaultBackend {
		t.Errorf("default backend = %q, want %q", b.Name(), DefaultBackend)
	}
	if _, err := Backend("nope"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestBigBackendTermPartsFirstTerms(t *testing.T) {
	t.Parallel()
	num, den := BigBackend{}.TermParts(0)
	if num.Int64() != LinearA {
		t.Errorf("num(0) = %s, want %d", num, LinearA)
	}
	if den.Int64() != C {
		t.Errorf("den(0) = %s, want %d", den, C)
	}

	num, den = BigBackend{}.TermParts(1)
	wantNum := big.NewInt(-720 * (LinearA + LinearB))
	if num.Cmp(wantNum) != 0 {
		t.Errorf("num(1) = %s, want %s", num, wantNum)
	}
	// (C³)·C·1·3!
	wantDen := new(big.Int).Mul(C3(), big.NewInt(C*6))
	if den.Cmp(wantDen) != 0 {
		t.Errorf("den(1) = %s, want %s", den, wantDen)
	}
}
