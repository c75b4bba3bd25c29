// Package app wires configuration, engines and the run modes of nttmul.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/nttmul/internal/calibration"
	"github.com/agbru/nttmul/internal/cli"
	"github.com/agbru/nttmul/internal/config"
	apperrors "github.com/agbru/nttmul/internal/errors"
	"github.com/agbru/nttmul/internal/logging"
	"github.com/agbru/nttmul/internal/multiply"
	"github.com/agbru/nttmul/internal/server"
	"github.com/agbru/nttmul/internal/tui"
	"github.com/agbru/nttmul/internal/ui"
)

// Application is one nttmul invocation.
type Application struct {
	Config  config.AppConfig
	Factory multiply.Factory
	// ThresholdSource tells where Config.AutoThreshold came from.
	ThresholdSource string
	// In supplies the operands in stream mode.
	In io.Reader
	// ErrWriter receives prompts, diagnostics and logs.
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the engine factory.
func WithFactory(f multiply.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the operand stream used when no operand flag is given.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New parses args (args[0] is the program name) and resolves the auto
// engine threshold.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = multiply.GlobalFactory()
	}

	programName := "nttmul"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	calibrated := 0
	if cfg.AutoThreshold == 0 {
		calibrated = calibration.LoadAutoThreshold(cfg.CalibrationProfile)
	}
	app.Config, app.ThresholdSource = config.ResolveAutoThreshold(cfg, calibrated)
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	logger, err := a.setupLogging()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error configuring logging: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	ui.InitTheme(a.Config.NoColor)
	logger.Debug("configuration resolved",
		logging.String("engine", a.Config.Engine),
		logging.Int("auto_threshold", a.Config.AutoThreshold),
		logging.String("threshold_source", a.ThresholdSource),
	)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.ServerMode:
		return a.runServer(ctx, logger)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	default:
		return a.runCalculate(ctx, out)
	}
}

// setupLogging routes the global logger to ErrWriter. Quiet runs only log
// warnings unless a level was asked for explicitly.
func (a *Application) setupLogging() (logging.Logger, error) {
	level := a.Config.LogLevel
	if a.Config.Quiet && level == config.DefaultLogLevel {
		level = "warn"
	}
	return logging.Setup(logging.Options{
		Level:   level,
		Output:  a.ErrWriter,
		Console: true,
		NoColor: a.Config.NoColor,
	})
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	return calibration.RunCalibration(ctx, out, a.Factory, calibration.Options{
		ProfilePath: a.Config.CalibrationProfile,
		SaveProfile: true,
		ChartPath:   a.Config.Chart,
	})
}

func (a *Application) runServer(ctx context.Context, logger logging.Logger) int {
	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logger.With(logging.String("component", "server"))))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context) int {
	return tui.Run(ctx, a.Factory, a.Config, Version)
}

func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultEngine: a.Config.Engine,
		Timeout:       a.Config.Timeout,
		Options:       a.Config.ToOptions(),
		Verbose:       a.Config.Verbose,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
