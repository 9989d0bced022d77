package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
	"github.com/agbru/picalc/internal/verify"
)

// OutputConfig selects where and how much of a result is printed.
type OutputConfig struct {
	// OutputFile receives the digits instead of stdout when set.
	OutputFile string
	// Quiet prints the digits and nothing else.
	Quiet bool
	// Verbose adds run details after the result.
	Verbose bool
}

// WriteResultToFile writes digits to path, creating parent directories. A
// failure is returned as a ResourceError so that callers can fall back to
// stdout.
func WriteResultToFile(digits, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperrors.ResourceError{Kind: apperrors.ResourceOutputFile, Path: path, Cause: err}
		}
	}
	if err := os.WriteFile(path, []byte(digits), 0o644); err != nil {
		return apperrors.ResourceError{Kind: apperrors.ResourceOutputFile, Path: path, Cause: err}
	}
	return nil
}

// FormatDigitCount returns the "Num digits" line.
func FormatDigitCount(digits string) string {
	return fmt.Sprintf("Num digits: %d", verify.DigitsComputed(digits))
}

// DisplayDigits prints the digit count and the digits, or writes the digits
// to cfg.OutputFile. When the file cannot be written the digits go to out
// instead. It returns the file error, if any, for logging.
func DisplayDigits(out io.Writer, digits string, cfg OutputConfig) error {
	var fileErr error
	if cfg.OutputFile != "" {
		if fileErr = WriteResultToFile(digits, cfg.OutputFile); fileErr == nil {
			if !cfg.Quiet {
				fmt.Fprintln(out, FormatDigitCount(digits))
				fmt.Fprintf(out, "%s✓ Digits saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
			}
			return nil
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "%sError opening specified file, defaulting to stdout.%s\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, FormatDigitCount(digits))
	}
	fmt.Fprintln(out, digits)
	return fileErr
}

// FormatComputationTime returns the elapsed-time line.
func FormatComputationTime(d time.Duration) string {
	return fmt.Sprintf("Computation took %s seconds", format.FormatSeconds(d))
}

// DisplayResult prints the elapsed time followed by the digits.
func DisplayResult(out io.Writer, digits string, duration time.Duration, cfg OutputConfig) error {
	if !cfg.Quiet {
		fmt.Fprintln(out, FormatComputationTime(duration))
	}
	return DisplayDigits(out, digits, cfg)
}

// DisplayAccuracy prints the verification report.
func DisplayAccuracy(out io.Writer, r verify.Report) {
	fmt.Fprintf(out, "\nChecking accuracy of calculation against %s...\n", r.ReferencePath)
	color := ui.ColorGreen()
	switch {
	case r.Skipped:
		color = ui.ColorYellow()
	case r.MatchedDigits < r.DigitsComputed:
		color = ui.ColorRed()
	}
	fmt.Fprintf(out, "%s%s%s\n", color, r, ui.ColorReset())
}
