package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
)

// Report is the outcome of comparing a computed digit string with a
// reference.
type Report struct {
	// Accuracy is the number of leading characters, "3." included, that
	// agree with the reference.
	Accuracy int
	// DigitsComputed is the number of decimals in the computed string.
	DigitsComputed int
	// MatchedDigits is the number of agreeing decimals, Accuracy minus the
	// "3." prefix.
	MatchedDigits int
	// Percent is MatchedDigits as a percentage of DigitsComputed.
	Percent float64

	// ReferencePath is the file the comparison read, if any.
	ReferencePath string
	// Skipped is set when no comparison could be made; Err says why.
	Skipped bool
	Err     error
}

// RoundedPercent returns Percent rounded to the nearest integer.
func (r Report) RoundedPercent() int {
	return int(math.Round(r.Percent))
}

// String formats the report the way the command line prints it.
func (r Report) String() string {
	if r.Skipped {
		return fmt.Sprintf("Accuracy check skipped: %v", r.Err)
	}
	return fmt.Sprintf("Calculation is accurate to %d digits (%d%% accuracy).", r.MatchedDigits, r.RoundedPercent())
}

// Compare reads ref in lock-step with computed and stops at the first
// position where they differ or either one ends. Only as much of ref as
// needed is read.
func Compare(computed string, ref io.Reader) (Report, error) {
	br := bufio.NewReader(ref)
	accuracy := 0
	for i := 0; i < len(computed); i++ {
		b, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("reading reference at offset %d: %w", i, err)
		}
		if b != computed[i] {
			break
		}
		accuracy++
	}
	return newReport(computed, accuracy), nil
}

func newReport(computed string, accuracy int) Report {
	r := Report{
		Accuracy:       accuracy,
		DigitsComputed: DigitsComputed(computed),
	}
	r.MatchedDigits = accuracy - 2
	if r.MatchedDigits < 0 {
		r.MatchedDigits = 0
	}
	if r.DigitsComputed > 0 {
		r.Percent = 100 * float64(r.MatchedDigits) / float64(r.DigitsComputed)
	}
	return r
}
