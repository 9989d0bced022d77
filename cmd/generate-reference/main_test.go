package main

import (
	"os"
	"strings"
	"testing"

	"github.com/agbru/picalc/internal/verify"
)

func TestPiText(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "3.1"},
		{5, "3.14159"},
		{20, "3.14159265358979323846"},
		{50, "3.14159265358979323846264338327950288419716939937510"},
	}
	for _, tt := range tests {
		if got := piText(tt.n); got != tt.want {
			t.Errorf("piText(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestMachinIntegerPart(t *testing.T) {
	if got := machin(0); got.Int64() != 3 {
		t.Errorf("machin(0) = %v, want 3", got)
	}
}

// TestMatchesReferenceFile checks the generator against the committed test
// corpus used by the verifier.
func TestMatchesReferenceFile(t *testing.T) {
	data, err := os.ReadFile("../../internal/verify/testdata/pi_20k.txt")
	if err != nil {
		t.Skipf("reference corpus unavailable: %v", err)
	}
	const n = 2000
	got := piText(n)
	report, err := verify.Compare(got, strings.NewReader(string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Accuracy != len(got) {
		t.Errorf("generated digits diverge from the corpus after %d characters", report.Accuracy)
	}
}
