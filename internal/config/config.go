// Package config parses and validates the picalc run configuration.
//
// Values are resolved in this order, highest priority first:
//  1. Command-line flags and positional arguments
//  2. PICALC_* environment variables
//  3. A YAML run profile given with --config
//  4. A cached calibration profile (thread count only)
//  5. Hardware-derived and static defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/agbru/picalc/internal/engine"
	apperrors "github.com/agbru/picalc/internal/errors"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "PICALC_"

// Defaults applied when neither flags, environment nor profile set a value.
const (
	DefaultIterations = 100
	DefaultPrecision  = 4096
	DefaultEngine     = "dynamic"
	DefaultBackend    = "big"
	DefaultGCMode     = "auto"
	DefaultReference  = "data/pi_one_mil.txt"
)

// AppConfig is the fully resolved configuration of one invocation.
type AppConfig struct {
	// Threads is the number of reduction workers.
	Threads int
	// Iterations is the number of series terms. It is signed so that
	// negative input can be reported instead of wrapping.
	Iterations int64
	// Precision is the float precision in bits.
	Precision uint
	// PrecisionBytes, when non-zero, sets Precision to 8·PrecisionBytes.
	PrecisionBytes uint
	// Engine is a registry name or "all".
	Engine string
	// Backend names the integer backend ("big", or "gmp" in gmp builds).
	Backend string

	Check     bool
	Reference string

	OutputFile string

	Quiet   bool
	Verbose bool
	NoColor bool
	TUI     bool
	Lenient bool

	MetricsAddr string
	GCMode      string

	Calibrate          bool
	CalibrationProfile string
	Completion         string
	ConfigFile         string

	// ThreadsSet records that the thread count came from the user rather
	// than from a default, so calibration profiles must not replace it.
	ThreadsSet bool
	// IterationsFallback records that a non-positive iteration count was
	// replaced by DefaultIterations because Lenient was set.
	IterationsFallback bool
	// RequestedIterations holds the rejected value when IterationsFallback
	// is set.
	RequestedIterations int64
}

// ToParams converts the configuration into engine run parameters. Backend
// and Observer are left for the caller to resolve.
func (c AppConfig) ToParams() engine.Params {
	iterations := uint64(0)
	if c.Iterations > 0 {
		iterations = uint64(c.Iterations)
	}
	return engine.Params{
		Threads:    c.Threads,
		Iterations: iterations,
		Precision:  c.Precision,
	}
}

// Usage is the one-line synopsis of the positional form.
const Usage = "[flags] [threads iterations precisionBytes]"

// ParseConfig parses args (without the program name) into an AppConfig and
// validates it. Flags may appear before, between or after the positional
// arguments. Help requests return flag.ErrHelp.
//
// Parameters:
//   - programName: Name shown in usage output.
//   - args: Command-line arguments without the program name.
//   - errWriter: Destination of usage and parse errors.
//   - availableEngines: Registry names accepted by --engine.
//   - availableBackends: Names accepted by --backend.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A parse error, flag.ErrHelp, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableEngines, availableBackends []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.IntVar(&cfg.Threads, "threads", DefaultThreads(), "Number of worker threads.")
	fs.IntVar(&cfg.Threads, "t", DefaultThreads(), "Number of worker threads (shorthand).")
	fs.Int64Var(&cfg.Iterations, "iterations", DefaultIterations, "Number of series terms to sum.")
	fs.Int64Var(&cfg.Iterations, "n", DefaultIterations, "Number of series terms (shorthand).")
	fs.UintVar(&cfg.Precision, "precision", DefaultPrecision, "Float precision in bits.")
	fs.UintVar(&cfg.Precision, "p", DefaultPrecision, "Float precision in bits (shorthand).")
	fs.UintVar(&cfg.PrecisionBytes, "precision-bytes", 0, "Float precision in bytes (overrides --precision).")
	fs.StringVar(&cfg.Engine, "engine", DefaultEngine, fmt.Sprintf("Reduction engine: %s, or all.", strings.Join(availableEngines, ", ")))
	fs.StringVar(&cfg.Backend, "backend", DefaultBackend, fmt.Sprintf("Integer backend: %s.", strings.Join(availableBackends, ", ")))
	fs.BoolVar(&cfg.Check, "check", false, "Check the digits against the reference file.")
	fs.BoolVar(&cfg.Check, "c", false, "Check the digits (shorthand).")
	fs.StringVar(&cfg.Reference, "reference", DefaultReference, "Reference digit file used by --check.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the digits to this file instead of stdout.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Output file (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the digits.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print run details and debug logs.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose mode (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&cfg.Lenient, "lenient", false, "Replace a non-positive iteration count with the default instead of failing.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run (e.g. :9090).")
	fs.StringVar(&cfg.GCMode, "gc", DefaultGCMode, "Garbage collector control: auto, aggressive, disabled.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure the best thread count and save a profile.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path (default ~/.picalc_calibration.json).")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script: bash, zsh, fish.")
	fs.StringVar(&cfg.ConfigFile, "config", getEnvString("CONFIG", ""), "YAML run profile.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s %s\n\n", programName, Usage)
		fs.PrintDefaults()
	}

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return AppConfig{}, err
	}

	if cfg.ConfigFile != "" {
		profile, err := LoadFileProfile(cfg.ConfigFile)
		if err != nil {
			err = fmt.Errorf("%w: %w", apperrors.ConfigError{Message: "cannot load --config profile"}, err)
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
		profile.apply(&cfg, fs)
	}
	applyEnvOverrides(&cfg, fs)

	if len(positional) > 0 {
		if err := applyPositional(&cfg, positional); err != nil {
			fmt.Fprintln(errWriter, err)
			return AppConfig{}, err
		}
	}
	if cfg.PrecisionBytes > 0 {
		cfg.Precision = 8 * cfg.PrecisionBytes
	}
	if isFlagSetAny(fs, "threads", "t") {
		cfg.ThreadsSet = true
	}

	if cfg.Iterations < 1 && cfg.Lenient {
		cfg.RequestedIterations = cfg.Iterations
		cfg.Iterations = DefaultIterations
		cfg.IterationsFallback = true
	}

	if err := cfg.Validate(availableEngines, availableBackends); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// parseInterleaved parses flags that may be mixed with positional
// arguments and returns the positional ones in order.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		for len(rest) > 0 && isNegativeInteger(rest[0]) {
			positional = append(positional, rest[0])
			rest = rest[1:]
		}
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}
}

// isNegativeInteger reports whether arg is a negative number rather than a
// flag, so that "4 -5 64" reaches validation instead of failing as an
// unknown flag.
func isNegativeInteger(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	_, err := strconv.ParseInt(arg, 10, 64)
	return err == nil
}

// applyPositional handles the "threads iterations precisionBytes" form.
func applyPositional(cfg *AppConfig, args []string) error {
	if len(args) != 3 {
		return apperrors.NewConfigError("expected 3 positional arguments (%s), got %d", Usage, len(args))
	}
	threads, err := strconv.Atoi(args[0])
	if err != nil {
		return apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("not an integer: %q", args[0])}
	}
	iterations, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return apperrors.ValidationError{Field: "iterations", Message: fmt.Sprintf("not an integer: %q", args[1])}
	}
	bytes, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return apperrors.ValidationError{Field: "precision", Message: fmt.Sprintf("not an integer: %q", args[2])}
	}
	if bytes < 1 {
		return apperrors.ValidationError{Field: "precision", Message: fmt.Sprintf("must be at least 1 byte, got %d", bytes)}
	}
	cfg.Threads = threads
	cfg.Iterations = iterations
	cfg.PrecisionBytes = uint(bytes)
	cfg.ThreadsSet = true
	return nil
}

// Validate checks the configuration. Every failure is a ConfigError or
// ValidationError.
func (c AppConfig) Validate(availableEngines, availableBackends []string) error {
	if c.Threads < 1 {
		return apperrors.ValidationError{Field: "threads", Message: fmt.Sprintf("must be at least 1, got %d", c.Threads)}
	}
	if c.Iterations < 1 {
		return apperrors.ValidationError{Field: "iterations", Message: fmt.Sprintf("must be at least 1, got %d", c.Iterations)}
	}
	if c.Precision < 1 {
		return apperrors.ValidationError{Field: "precision", Message: "must be at least 1 bit"}
	}
	if c.Engine != "all" && !slices.Contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unknown engine %q (available: %s, all)", c.Engine, strings.Join(availableEngines, ", "))
	}
	if len(availableBackends) > 0 && !slices.Contains(availableBackends, c.Backend) {
		return apperrors.NewConfigError("unknown backend %q (available: %s)", c.Backend, strings.Join(availableBackends, ", "))
	}
	switch c.GCMode {
	case "auto", "aggressive", "disabled":
	default:
		return apperrors.NewConfigError("invalid --gc mode %q (auto, aggressive, disabled)", c.GCMode)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui cannot be combined")
	}
	return nil
}
