package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/chudnovsky"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/ui"
	"github.com/agbru/picalc/internal/verify"
)

// CLIProgressReporter is the spinner-based orchestration.ProgressReporter.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, engines int, out io.Writer) {
	DisplayProgress(wg, progressChan, engines, out)
}

// CLIResultPresenter prints results on the terminal. It keeps the rendered
// digits of the last presented result for verification.
type CLIResultPresenter struct {
	Output OutputConfig

	logger     zerolog.Logger
	lastDigits string
}

var (
	_ orchestration.ResultPresenter = (*CLIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*CLIResultPresenter)(nil)
)

// NewCLIResultPresenter creates a presenter writing results per cfg.
func NewCLIResultPresenter(cfg OutputConfig) *CLIResultPresenter {
	return &CLIResultPresenter{Output: cfg, logger: zerolog.Nop()}
}

// SetLogger sets the logger used for output file failures.
func (p *CLIResultPresenter) SetLogger(l zerolog.Logger) { p.logger = l }

// PresentComparisonTable prints one aligned row per engine. Padding is
// computed on the visible text so that ANSI codes do not skew columns.
func (p *CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	if p.Output.Quiet {
		return
	}
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameWidth, durWidth := len("Engine"), len("Duration")
	for _, res := range results {
		nameWidth = max(nameWidth, len(res.Name))
		durWidth = max(durWidth, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", nameWidth-len("Engine")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", durWidth-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		}
		d := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", nameWidth-len(res.Name)),
			ui.ColorYellow(), d, ui.ColorReset(), padRight("", durWidth-len(d)),
			status)
	}
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult renders the digits of result and prints them with the
// elapsed time. In verbose mode the run parameters follow.
func (p *CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	p.lastDigits = verify.Render(result.Pi)
	if err := DisplayResult(out, p.lastDigits, result.Duration, p.Output); err != nil {
		p.logger.Warn().Err(err).Str("path", p.Output.OutputFile).Msg("output file not written, digits printed to stdout")
	}
	if opts.Verbose && !p.Output.Quiet {
		DisplayRunDetails(result, opts, out)
	}
}

// LastDigits returns the digits printed by the last PresentResult call.
func (p *CLIResultPresenter) LastDigits() string { return p.lastDigits }

// HandleError implements orchestration.ErrorHandler.
func (p *CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayRunDetails prints the engine, the precision and the number of
// digits the series can deliver for the iteration count.
func DisplayRunDetails(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	expected := int(float64(opts.Iterations) * chudnovsky.DigitsPerTerm)
	fmt.Fprintf(out, "\n--- Run Details ---\n")
	fmt.Fprintf(out, "Engine:          %s%s%s\n", ui.ColorGreen(), result.Name, ui.ColorReset())
	fmt.Fprintf(out, "Precision:       %s bits (%s decimal places)\n",
		format.FormatCount(int(opts.Precision)), format.FormatCount(verify.DecimalPlaces(opts.Precision)))
	fmt.Fprintf(out, "Series terms:    %s (about %s correct digits)\n",
		format.FormatCount(int(opts.Iterations)), format.FormatCount(expected))
	fmt.Fprintf(out, "Wall time:       %s\n", format.FormatExecutionDuration(result.Duration))
}

// DisplayMemoryStats prints the allocation delta of a run with GC control.
func DisplayMemoryStats(s memory.GCStats, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap at end:     %s\n", format.FormatBytes(s.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(s.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", s.NumGC)
	if s.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(s.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}
