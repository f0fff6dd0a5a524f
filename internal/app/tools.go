package app

import (
	"fmt"
	"math/big"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/pisanocalc/internal/cli"
	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/fibonacci"
	"github.com/agbru/pisanocalc/internal/primes"
)

func (a *Application) fibCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fib N M",
		Short: "Print F(N) mod M (M may exceed 64 bits)",
		Args:  exactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := parseUint("n", args[0])
			if err != nil {
				return err
			}
			m, ok := new(big.Int).SetString(strings.TrimSpace(args[1]), 10)
			if !ok {
				return apperrors.ValidationError{Field: "m", Message: fmt.Sprintf("%q is not an integer", args[1])}
			}
			v, err := fibonacci.FibonacciModAny(n, m)
			if err != nil {
				return apperrors.ValidationError{Field: "m", Message: err.Error()}
			}
			if a.Config.Quiet {
				fmt.Fprintln(a.Out, v)
				return nil
			}
			fmt.Fprintf(a.Out, "F(%d) mod %s = %s\n", n, m, v)
			return nil
		},
	}
}

func (a *Application) isPrimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isprime N [N...]",
		Short: "Report whether each argument is prime",
		Args:  minimumArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			values := make([]uint64, len(args))
			for i, arg := range args {
				n, err := parseUint("n", arg)
				if err != nil {
					return err
				}
				values[i] = n
			}
			for _, n := range values {
				if a.Config.Quiet {
					fmt.Fprintf(a.Out, "%d,%t\n", n, primes.IsPrime(n))
					continue
				}
				cli.DisplayPrimality(a.Out, n, primes.IsPrime(n))
			}
			return nil
		},
	}
}

func (a *Application) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session (period, fib, isprime)",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			// --timeout bounds each search, not the session.
			ctx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stopSignals()

			repl := cli.NewREPL(cli.REPLConfig{Timeout: a.Config.Timeout, MaxSteps: a.Config.MaxSteps})
			repl.SetInput(a.In)
			repl.SetOutput(a.Out)
			repl.Start(ctx)
			return nil
		},
	}
}

func parseUint(field, s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, apperrors.ValidationError{Field: field, Message: fmt.Sprintf("%q is not a non-negative integer", s)}
	}
	return n, nil
}
