package app

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/agbru/pisanocalc/internal/cli"
	"github.com/agbru/pisanocalc/internal/config"
	"github.com/agbru/pisanocalc/internal/logging"
	"github.com/agbru/pisanocalc/internal/primes"
)

func (a *Application) primesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "primes COUNT [-o primes.csv]",
		Short: "Generate the first COUNT primes (1 to 1,000,000)",
		Long: `Generates the first COUNT primes with a segmented sieve. Without --output
(or with --verbose) the primes are printed one per line. With --output they
are written as a single "Prime Numbers" column.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPrimes(cmd, args[0])
		},
	}
	config.BindPrimesFlags(cmd.Flags(), &a.Config)
	return cmd
}

func (a *Application) runPrimes(cmd *cobra.Command, arg string) error {
	count, err := config.ParseCount(arg)
	if err != nil {
		return err
	}

	ctx, cancel := a.lifecycle(cmd.Context())
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintPrimesConfig(a.Out, a.Config, count)
	}
	start := time.Now()
	list, err := primes.Generate(ctx, count, primes.Options{Workers: a.Config.Workers})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	a.Metrics.ObservePrimes(len(list))
	a.Logger.Info("primes generated", logging.Int("count", len(list)), logging.Duration("elapsed", elapsed))

	if a.Config.OutputFile == "" || a.Config.Verbose {
		cli.DisplayPrimes(a.Out, list)
	}
	if !a.Config.Quiet {
		cli.DisplayPrimesSummary(a.Out, list, elapsed)
	}
	return cli.SavePrimes(a.Out, list, cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet})
}
