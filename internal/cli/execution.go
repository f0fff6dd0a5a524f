package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/pisanocalc/internal/config"
	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/ui"
)

// PrintPeriodsConfig describes the period batch about to run.
func PrintPeriodsConfig(out io.Writer, cfg config.AppConfig, count int) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing Pisano periods of %s%s%s prime(s) from %s%s%s.\n",
		ui.ColorMagenta(), format.FormatCount(count), ui.ColorReset(),
		ui.ColorCyan(), cfg.InputFile, ui.ColorReset())
	bound := "6n per prime"
	if cfg.MaxSteps > 0 {
		bound = format.FormatCount(cfg.MaxSteps) + " steps per prime"
	}
	fmt.Fprintf(out, "Search bound: %s%s%s. %s.\n", ui.ColorYellow(), bound, ui.ColorReset(), describeTimeout(cfg))
	printEnvironment(out)
}

// PrintPrimesConfig describes the prime generation about to run.
func PrintPrimesConfig(out io.Writer, cfg config.AppConfig, count int) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Generating the first %s%s%s prime(s) with %s%d%s sieve worker(s). %s.\n",
		ui.ColorMagenta(), format.FormatCount(count), ui.ColorReset(),
		ui.ColorCyan(), workers, ui.ColorReset(), describeTimeout(cfg))
	printEnvironment(out)
}

func describeTimeout(cfg config.AppConfig) string {
	if cfg.Timeout <= 0 {
		return "No timeout"
	}
	return fmt.Sprintf("Timeout %s%s%s", ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
}

func printEnvironment(out io.Writer) {
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
