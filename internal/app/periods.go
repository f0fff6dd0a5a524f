package app

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agbru/pisanocalc/internal/cli"
	"github.com/agbru/pisanocalc/internal/config"
	"github.com/agbru/pisanocalc/internal/csvio"
	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/logging"
	"github.com/agbru/pisanocalc/internal/metrics"
	"github.com/agbru/pisanocalc/internal/orchestration"
	"github.com/agbru/pisanocalc/internal/tui"
)

func (a *Application) periodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods -i primes.csv [-o periods.csv]",
		Short: "Compute the Pisano period of every prime in a CSV file",
		Long: `Reads primes from the first column of a CSV file (an optional header row
is skipped), rejects the whole batch if any value is not a prime, and prints
the Pisano period of each one. With --output the pairs are written as
"Prime,Pisano Period" rows. Stopping the batch keeps the periods computed so far.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPeriods(cmd)
		},
	}
	config.BindPeriodsFlags(cmd.Flags(), &a.Config)
	return cmd
}

// runPeriods orchestrates the periods command: read, compute, present, save.
func (a *Application) runPeriods(cmd *cobra.Command) error {
	if a.Config.InputFile == "" {
		return apperrors.NewConfigError("--input is required (or set %sINPUT)", config.EnvPrefix)
	}
	list, err := csvio.ReadPrimesFile(a.Config.InputFile)
	if err != nil {
		return err
	}
	a.Logger.Info("input loaded", logging.String("path", a.Config.InputFile), logging.Int("count", len(list)))

	ctx, cancel := a.lifecycle(cmd.Context())
	defer cancel()

	opts := orchestration.Options{MaxSteps: a.Config.MaxSteps, Observer: a.Metrics}
	stop := &orchestration.StopFlag{}
	memory := metrics.NewMemoryCollector()
	before := memory.Snapshot()

	var batch orchestration.BatchResult
	if a.Config.TUI {
		batch, err = tui.Run(ctx, list, opts, stop, Version)
	} else {
		if !a.Config.Quiet {
			cli.PrintPeriodsConfig(a.Out, a.Config, len(list))
		}
		var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
		progressOut := a.Out
		if a.Config.Quiet {
			reporter = orchestration.NullProgressReporter{}
			progressOut = io.Discard
		}
		batch, err = orchestration.ExecutePeriods(ctx, list, opts, stop, reporter, progressOut)
	}

	cli.CLIResultPresenter{Quiet: a.Config.Quiet, Verbose: a.Config.Verbose}.PresentBatch(batch, a.Out)
	if a.Config.Verbose {
		cli.DisplayMemoryStats(a.Out, memory.Snapshot().Since(before))
	}
	a.Logger.Info("batch finished",
		logging.Int("completed", batch.Completed()),
		logging.Int("total", batch.Total),
		logging.Duration("elapsed", batch.Elapsed))

	// Partial results are saved whatever ended the batch.
	if saveErr := cli.SavePeriods(a.Out, batch.Results, cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}); saveErr != nil {
		if err == nil {
			return saveErr
		}
		a.Logger.Error("saving partial results failed", saveErr, logging.String("path", a.Config.OutputFile))
	}
	return err
}
