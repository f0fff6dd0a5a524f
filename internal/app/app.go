package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agbru/pisanocalc/internal/cli"
	"github.com/agbru/pisanocalc/internal/config"
	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/logging"
	"github.com/agbru/pisanocalc/internal/metrics"
	"github.com/agbru/pisanocalc/internal/ui"
)

// Application represents the pisanocalc application instance.
type Application struct {
	Config  config.AppConfig
	In      io.Reader
	Out     io.Writer
	ErrOut  io.Writer
	Logger  logging.Logger
	Metrics *metrics.Registry
}

// New creates an Application writing results to out and diagnostics to errOut.
func New(out, errOut io.Writer) *Application {
	return &Application{
		Config:  config.Default(),
		In:      os.Stdin,
		Out:     out,
		ErrOut:  errOut,
		Logger:  logging.NopLogger{},
		Metrics: metrics.NewRegistry(),
	}
}

// Run parses args, executes the selected command and returns the exit code.
func (a *Application) Run(ctx context.Context, args []string) int {
	ui.InitTheme(false)

	root := a.NewRootCommand()
	root.SetArgs(args)
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)

	err := root.ExecuteContext(ctx)
	a.writeMetrics()
	if err != nil {
		return apperrors.HandleError(err, a.ErrOut, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}

// NewRootCommand builds the command tree bound to a.Config.
func (a *Application) NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pisanocalc",
		Short: "Pisano period batch calculator and prime generator",
		Long: `pisanocalc computes Pisano periods for a CSV list of primes and
generates the first N primes as CSV.

Configuration is read from flags, then PISANO_* environment variables,
then the file named by --env-file.`,
		Version:           VersionString(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.prepare,
	}
	root.SetVersionTemplate("pisanocalc {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})
	config.BindPersistentFlags(root.PersistentFlags(), &a.Config)

	root.AddCommand(
		a.periodsCmd(),
		a.primesCmd(),
		a.fibCmd(),
		a.isPrimeCmd(),
		a.replCmd(),
	)
	return root
}

// prepare resolves the configuration chain and sets up theme and logging.
func (a *Application) prepare(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(a.Config.EnvFile); err != nil {
		return err
	}
	if err := config.ApplyEnvOverrides(&a.Config, cmd.Flags()); err != nil {
		return err
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	ui.InitTheme(a.Config.NoColor)
	a.Logger = a.newLogger()
	a.Logger.Debug("configuration resolved",
		logging.String("command", cmd.Name()),
		logging.Uint64("max_steps", a.Config.MaxSteps),
		logging.Int("workers", a.Config.Workers),
		logging.Duration("timeout", a.Config.Timeout))
	return nil
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
func (a *Application) newLogger() logging.Logger {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return logging.NopLogger{}
	}
	if f, ok := a.ErrOut.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return logging.NewConsoleLogger(a.ErrOut, "pisanocalc").WithLevel(level)
	}
	return logging.NewLogger(a.ErrOut, "pisanocalc").WithLevel(level)
}

// lifecycle derives the run context: SIGINT/SIGTERM cancel it and
// --timeout bounds it.
func (a *Application) lifecycle(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, stopSignals := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	if a.Config.Timeout <= 0 {
		return ctx, stopSignals
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	return ctx, func() {
		cancelTimeout()
		stopSignals()
	}
}

func (a *Application) writeMetrics() {
	if a.Config.MetricsFile == "" {
		return
	}
	if err := a.Metrics.WriteTextfile(a.Config.MetricsFile); err != nil {
		a.Logger.Error("metrics snapshot failed", err, logging.String("path", a.Config.MetricsFile))
		return
	}
	a.Logger.Info("metrics written", logging.String("path", a.Config.MetricsFile))
}

// exactArgs reports a wrong argument count as a configuration error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return apperrors.NewConfigError("%v (usage: %s)", err, cmd.UseLine())
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return apperrors.NewConfigError("%v (usage: %s)", err, cmd.UseLine())
		}
		return nil
	}
}
