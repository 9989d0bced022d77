package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/engine"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/memory"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
	"github.com/agbru/picalc/internal/server"
	"github.com/agbru/picalc/internal/sysmon"
	"github.com/agbru/picalc/internal/verify"
)

// loggerSetter is implemented by engines and components that accept a
// zerolog logger.
type loggerSetter interface {
	SetLogger(zerolog.Logger)
}

func (a *Application) attachLogger(targets ...any) {
	for _, t := range targets {
		if s, ok := t.(loggerSetter); ok {
			s.SetLogger(a.logger)
		}
	}
}

// prepareRun resolves the engines and run parameters from the configuration.
func (a *Application) prepareRun() ([]engine.Engine, engine.Params, error) {
	engines := orchestration.GetEnginesToRun(a.Config.Engine, a.Factory)
	if len(engines) == 0 {
		return nil, engine.Params{}, apperrors.NewConfigError("unknown engine %q", a.Config.Engine)
	}
	backend, err := chudnovsky.Backend(a.Config.Backend)
	if err != nil {
		return nil, engine.Params{}, apperrors.NewConfigError("%v", err)
	}
	params := a.Config.ToParams()
	params.Backend = backend
	if err := params.Validate(); err != nil {
		return nil, engine.Params{}, err
	}
	for _, e := range engines {
		a.attachLogger(e)
	}
	return engines, params, nil
}

// observedEngine gives each engine its own term observer, so that metrics
// are labeled per engine even when several engines share one Params.
type observedEngine struct {
	engine.Engine
	observer engine.TermObserver
}

func (o observedEngine) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, p engine.Params) (*big.Float, error) {
	p.Observer = o.observer
	return o.Engine.Calculate(ctx, progressChan, calcIndex, p)
}

// startMetrics starts the metrics endpoint when --metrics-addr is set and
// wraps engines so that they report term timings. The returned stop
// function is never nil.
func (a *Application) startMetrics(engines []engine.Engine) ([]engine.Engine, *server.Metrics, func(), error) {
	if a.Config.MetricsAddr == "" {
		return engines, nil, func() {}, nil
	}
	m := server.NewMetrics()
	srv := server.New(a.Config.MetricsAddr, m, logging.NewZerologAdapter(a.logger))
	if _, err := srv.Start(); err != nil {
		return nil, nil, nil, apperrors.ResourceError{Kind: apperrors.ResourceListener, Path: a.Config.MetricsAddr, Cause: err}
	}
	wrapped := make([]engine.Engine, len(engines))
	for i, e := range engines {
		wrapped[i] = observedEngine{Engine: e, observer: m.ObserverFor(e.Name())}
	}
	stop := func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			a.logger.Warn().Err(err).Msg("metrics server shutdown")
		}
	}
	return wrapped, m, stop, nil
}

// runCalculate runs the configured engines, prints the digits and, with
// --check, verifies them against the reference file.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	engines, params, err := a.prepareRun()
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}

	engines, metrics, stopMetrics, err := a.startMetrics(engines)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}
	defer stopMetrics()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, sysmon.Host(), out)
		cli.PrintExecutionMode(engines, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	gc := memory.NewGCController(a.Config.GCMode, params.Iterations, params.Precision)
	gc.SetLogger(a.logger)
	gc.Begin()

	if metrics != nil {
		metrics.IncrementActiveRuns()
	}
	results := orchestration.ExecuteCalculations(ctx, engines, params, reporter, progressOut)
	if metrics != nil {
		metrics.DecrementActiveRuns()
		for _, r := range results {
			metrics.ObserveRun(r.Name, r.Duration, r.Err)
		}
	}
	gc.End()

	presenter := cli.NewCLIResultPresenter(cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	})
	a.attachLogger(presenter)
	opts := orchestration.PresentationOptions{
		Iterations: params.Iterations,
		Precision:  params.Precision,
		Verbose:    a.Config.Verbose,
	}

	exitCode := a.presentResults(results, opts, presenter, out)
	if exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	if gc.Active() && a.Config.Verbose && !a.Config.Quiet {
		cli.DisplayMemoryStats(gc.Stats(), out)
	}
	if a.Config.Check {
		a.checkAccuracy(ctx, presenter.LastDigits(), out)
	}
	return apperrors.ExitSuccess
}

// presentResults prints a single run directly and compares several runs.
func (a *Application) presentResults(results []orchestration.CalculationResult, opts orchestration.PresentationOptions, presenter *cli.CLIResultPresenter, out io.Writer) int {
	if len(results) != 1 {
		return orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)
	}
	r := results[0]
	if r.Err != nil {
		return presenter.HandleError(r.Err, r.Duration, out)
	}
	if !a.Config.Quiet {
		fmt.Fprintln(out)
	}
	presenter.PresentResult(r, opts, out)
	return apperrors.ExitSuccess
}

// checkAccuracy compares digits with the reference file. A missing or
// unreadable reference downgrades the check to a skipped report.
func (a *Application) checkAccuracy(ctx context.Context, digits string, out io.Writer) {
	v := verify.NewVerifier(a.Config.Reference)
	v.SetLogger(a.logger)

	start := time.Now()
	report := v.Verify(ctx, digits)
	a.logger.Debug().Dur("elapsed", time.Since(start)).Int("accuracy", report.Accuracy).Msg("reference comparison finished")
	cli.DisplayAccuracy(out, report)
}
