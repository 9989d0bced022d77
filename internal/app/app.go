package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/calibration"
	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/engine"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/tui"
	"github.com/agbru/picalc/internal/ui"
)

// Application represents one picalc invocation.
type Application struct {
	Config    config.AppConfig
	Factory   engine.Factory
	ErrWriter io.Writer

	// CalibrationApplied records that the thread count came from a cached
	// calibration profile.
	CalibrationApplied bool

	logger zerolog.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom engine factory.
func WithFactory(f engine.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates an Application by parsing the command line. args[0] is the
// program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = engine.NewDefaultFactory()
	}

	programName := "picalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List(), chudnovsky.BackendNames())
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
		app.CalibrationApplied = true
	} else {
		cfg = config.ApplyAdaptiveThreads(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.initLogging()
	ui.InitTheme(a.Config.NoColor)

	if a.Config.IterationsFallback {
		a.logger.Warn().
			Int64("requested", a.Config.RequestedIterations).
			Int64("using", a.Config.Iterations).
			Msg("non-positive iteration count replaced by the default")
	}
	if a.CalibrationApplied {
		a.logger.Debug().Int("threads", a.Config.Threads).Msg("thread count from calibration profile")
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx)
	}
	return a.runCalculate(ctx, out)
}

// initLogging sends diagnostics to ErrWriter: warnings by default, debug
// events with --verbose, errors only with --quiet.
func (a *Application) initLogging() {
	level := zerolog.WarnLevel
	switch {
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	case a.Config.Quiet:
		level = zerolog.ErrorLevel
	}
	errWriter := a.ErrWriter
	if errWriter == nil {
		errWriter = io.Discard
	}
	a.logger = logging.NewConsoleZerolog(errWriter, "picalc").Level(level)
}

// runCompletion generates a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration measures the best thread count with the configured engine.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	name := a.Config.Engine
	if name == orchestration.EngineAll {
		name = config.DefaultEngine
	}
	eng, err := a.Factory.Get(name)
	if err != nil {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("%v", err), 0, out, cli.CLIColorProvider{})
	}
	backend, err := chudnovsky.Backend(a.Config.Backend)
	if err != nil {
		return apperrors.HandleCalculationError(apperrors.NewConfigError("%v", err), 0, out, cli.CLIColorProvider{})
	}
	a.attachLogger(eng)

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
	}
	return calibration.RunCalibration(ctx, out, calibration.Options{
		Engine:      eng,
		Backend:     backend,
		ProfilePath: a.Config.CalibrationProfile,
	}, reporter, cli.CLIColorProvider{})
}

// runTUI launches the dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	engines, params, err := a.prepareRun()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return tui.Run(ctx, engines, params, a.Config, Version)
}

// IsHelpError reports whether err is the result of --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
