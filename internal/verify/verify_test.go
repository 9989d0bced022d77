package verify

import (
	"context"
	"errors"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/agbru/picalc/internal/errors"
)

const referenceFixture = "testdata/pi_20k.txt"

func TestCompare(t *testing.T) {
	t.Parallel()
	const ref = "3.14159265358979323846"
	tests := []struct {
		name         string
		computed     string
		wantAccuracy int
		wantMatched  int
		wantPercent  float64
	}{
		{"exact prefix", "3.14159", 7, 5, 100},
		{"mismatch at seventh character", "3.14158", 6, 4, 80},
		{"first character differs", "2.71828", 0, 0, 0},
		{"longer than reference", ref + "99", len(ref), len(ref) - 2, 100 * float64(len(ref)-2) / float64(len(ref))},
		{"empty", "", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Compare(tt.computed, strings.NewReader(ref))
			if err != nil {
				t.Fatal(err)
			}
			if got.Accuracy != tt.wantAccuracy {
				t.Errorf("Accuracy = %d, want %d", got.Accuracy, tt.wantAccuracy)
			}
			if got.MatchedDigits != tt.wantMatched {
				t.Errorf("MatchedDigits = %d, want %d", got.MatchedDigits, tt.wantMatched)
			}
			if got.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", got.Percent, tt.wantPercent)
			}
		})
	}
}

type failingReader struct{ after int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after == 0 {
		return 0, errors.New("disk on fire")
	}
	n := copy(p, "3.14159"[:r.after])
	r.after = 0
	return n, nil
}

func TestCompareReadError(t *testing.T) {
	t.Parallel()
	_, err := Compare("3.14159", &failingReader{after: 3})
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Fatalf("expected read error, got %v", err)
	}
}

// TestCompareReadsOnlyWhatItNeeds checks that a short computed string does not
// consume the whole reference.
func TestCompareReadsOnlyWhatItNeeds(t *testing.T) {
	t.Parallel()
	ref := strings.NewReader("3.14159" + strings.Repeat("0", 1<<20))
	if _, err := Compare("3.14", ref); err != nil {
		t.Fatal(err)
	}
	if ref.Len() == 0 {
		t.Error("reference fully consumed")
	}
}

func TestCompareProperty(t *testing.T) {
	data, err := os.ReadFile(referenceFixture)
	if err != nil {
		t.Fatal(err)
	}
	ref := string(data)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("a reference prefix with one altered digit matches up to the alteration", prop.ForAll(
		func(length, pos int) bool {
			if pos >= length {
				pos = length - 1
			}
			computed := []byte(ref[:length])
			if computed[pos] == '.' {
				return true
			}
			computed[pos] = '0' + (computed[pos]-'0'+1)%10
			report, err := Compare(string(computed), strings.NewReader(ref))
			return err == nil && report.Accuracy == pos
		},
		gen.IntRange(3, len(ref)),
		gen.IntRange(0, len(ref)-1),
	))

	properties.TestingRun(t)
}

func TestDecimalPlaces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		prec uint
		want int
	}{
		{1, 1},
		{8, 1},
		{64, 18},
		{1000, 300},
		{3321929, 999999},
	}
	for _, tt := range tests {
		if got := DecimalPlaces(tt.prec); got != tt.want {
			t.Errorf("DecimalPlaces(%d) = %d, want %d", tt.prec, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	t.Parallel()
	pi, _, err := big.ParseFloat("3.14159265358979323846264338327950288", 10, 64, big.ToNearestEven)
	if err != nil {
		t.Fatal(err)
	}
	got := Render(pi)
	if len(got) != 2+DecimalPlaces(64) {
		t.Errorf("len(Render) = %d, want %d", len(got), 2+DecimalPlaces(64))
	}
	if !strings.HasPrefix(got, "3.14159265358979") {
		t.Errorf("Render = %s", got)
	}
	if DigitsComputed(got) != DecimalPlaces(64) {
		t.Errorf("DigitsComputed = %d", DigitsComputed(got))
	}
}

func TestVerifierAgainstFixture(t *testing.T) {
	t.Parallel()
	v := NewVerifier(referenceFixture)
	report := v.Verify(context.Background(), "3.14159265358979323846")
	if report.Skipped {
		t.Fatalf("unexpected skip: %v", report.Err)
	}
	if report.Accuracy != 22 || report.RoundedPercent() != 100 {
		t.Errorf("report = %+v", report)
	}
	if got := report.String(); got != "Calculation is accurate to 20 digits (100% accuracy)." {
		t.Errorf("String() = %q", got)
	}
}

func TestVerifierMissingReference(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "missing.txt")
	report := NewVerifier(path).Verify(context.Background(), "3.14")
	if !report.Skipped {
		t.Fatal("expected skipped report")
	}
	var re apperrors.ResourceError
	if !errors.As(report.Err, &re) || re.Path != path {
		t.Errorf("Err = %v, want ResourceError for %s", report.Err, path)
	}
	if !errors.Is(report.Err, os.ErrNotExist) {
		t.Errorf("Err should wrap os.ErrNotExist")
	}
	if !strings.HasPrefix(report.String(), "Accuracy check skipped") {
		t.Errorf("String() = %q", report.String())
	}
}

func TestNewVerifierDefaultPath(t *testing.T) {
	t.Parallel()
	if got := NewVerifier("").ReferencePath; got != DefaultReferencePath {
		t.Errorf("ReferencePath = %q", got)
	}
}

var _ io.Reader = (*failingReader)(nil)
