package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/verify"
)

const sampleDigits = "3.14159265358979"

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	testCases := []struct {
		name       string
		outputFile string
	}{
		{"Plain file", filepath.Join(tmpDir, "pi.txt")},
		{"Nested directory", filepath.Join(tmpDir, "nested", "dir", "pi.txt")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := WriteResultToFile(sampleDigits, tc.outputFile); err != nil {
				t.Fatalf("WriteResultToFile: %v", err)
			}
			content, err := os.ReadFile(tc.outputFile)
			if err != nil {
				t.Fatalf("Failed to read output file: %v", err)
			}
			if string(content) != sampleDigits {
				t.Errorf("file content = %q, want %q", content, sampleDigits)
			}
		})
	}
}

func TestWriteResultToFileUnwritable(t *testing.T) {
	t.Parallel()
	// A regular file cannot be used as a parent directory.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteResultToFile(sampleDigits, filepath.Join(blocker, "pi.txt"))

	var re apperrors.ResourceError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want ResourceError", err)
	}
	if re.Kind != apperrors.ResourceOutputFile {
		t.Errorf("Kind = %v, want ResourceOutputFile", re.Kind)
	}
}

func TestDisplayDigits(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		cfg         OutputConfig
		contains    []string
		notContains []string
		wantErr     bool
	}{
		{
			name:     "Stdout",
			cfg:      OutputConfig{},
			contains: []string{"Num digits: 14\n", sampleDigits + "\n"},
		},
		{
			name:     "Quiet stdout",
			cfg:      OutputConfig{Quiet: true},
			contains: []string{sampleDigits + "\n"},
			notContains: []string{"Num digits"},
		},
		{
			name:        "File",
			cfg:         OutputConfig{OutputFile: filepath.Join(tmpDir, "ok.txt")},
			contains:    []string{"Num digits: 14", "Digits saved to"},
			notContains: []string{sampleDigits},
		},
		{
			name:        "Quiet file",
			cfg:         OutputConfig{OutputFile: filepath.Join(tmpDir, "quiet.txt"), Quiet: true},
			notContains: []string{sampleDigits, "Num digits", "saved"},
		},
		{
			name:     "Unwritable file falls back to stdout",
			cfg:      OutputConfig{OutputFile: filepath.Join(blocker, "pi.txt")},
			contains: []string{"Error opening specified file, defaulting to stdout.", "Num digits: 14", sampleDigits},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := DisplayDigits(&buf, sampleDigits, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("output %q should contain %q", out, s)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(out, s) {
					t.Errorf("output %q should not contain %q", out, s)
				}
			}
		})
	}
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := DisplayResult(&buf, sampleDigits, 1500*time.Millisecond, OutputConfig{}); err != nil {
		t.Fatal(err)
	}
	want := "Computation took 1.50000 seconds\nNum digits: 14\n3.14159265358979\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	_ = DisplayResult(&buf, sampleDigits, time.Second, OutputConfig{Quiet: true})
	if buf.String() != sampleDigits+"\n" {
		t.Errorf("quiet output = %q", buf.String())
	}
}

func TestDisplayAccuracy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		report verify.Report
		want   string
	}{
		{
			name:   "Accurate",
			report: verify.Report{ReferencePath: "ref.txt", Accuracy: 7, DigitsComputed: 5, MatchedDigits: 5, Percent: 100},
			want:   "Calculation is accurate to 5 digits (100% accuracy).",
		},
		{
			name:   "Skipped",
			report: verify.Report{ReferencePath: "missing.txt", Skipped: true, Err: errors.New("gone")},
			want:   "Accuracy check skipped: gone",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayAccuracy(&buf, tt.report)
			out := buf.String()
			if !strings.Contains(out, "Checking accuracy of calculation against "+tt.report.ReferencePath) {
				t.Errorf("missing header in %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output %q should contain %q", out, tt.want)
			}
		})
	}
}
