package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/engine"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/ui"
	"github.com/agbru/picalc/internal/verify"
)

// PrintExecutionConfig prints the run parameters and the host description.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.HostInfo, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %sπ%s with %s%s%s series terms at %s%s%s bits (%s decimal places).\n",
		ui.ColorMagenta(), ui.ColorReset(),
		ui.ColorYellow(), format.FormatCount(int(cfg.Iterations)), ui.ColorReset(),
		ui.ColorYellow(), format.FormatCount(int(cfg.Precision)), ui.ColorReset(),
		format.FormatCount(verify.DecimalPlaces(cfg.Precision)))
	fmt.Fprintf(out, "Workers: %s%d%s threads, %s%s%s integer backend.\n",
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(), ui.ColorCyan(), cfg.Backend, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%s%s, %s%d%s logical processors, %s memory, Go %s%s%s.\n",
		ui.ColorCyan(), host.ModelName, ui.ColorReset(),
		ui.ColorCyan(), host.LogicalCores, ui.ColorReset(),
		format.FormatBytes(host.TotalMemory),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if len(host.Features) > 0 {
		fmt.Fprintf(out, "CPU features: %s.\n", strings.Join(host.Features, ", "))
	}
}

// PrintExecutionMode prints whether one engine runs or several are compared.
func PrintExecutionMode(engines []engine.Engine, out io.Writer) {
	desc := "Parallel comparison of all engines"
	if len(engines) == 1 {
		desc = fmt.Sprintf("Single run with the %s%s%s engine", ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", desc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
