package cli

import (
	"fmt"
	"io"

	"github.com/agbru/pisanocalc/internal/csvio"
	"github.com/agbru/pisanocalc/internal/orchestration"
	"github.com/agbru/pisanocalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode suppresses the save confirmation.
	Quiet bool
}

// SavePeriods writes results to cfg.OutputFile and confirms on out.
// It does nothing when no output file is configured.
func SavePeriods(out io.Writer, results []orchestration.PeriodResult, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := csvio.WritePeriodsFile(cfg.OutputFile, results); err != nil {
		return err
	}
	displaySaved(out, cfg)
	return nil
}

// SavePrimes writes list to cfg.OutputFile and confirms on out.
// It does nothing when no output file is configured.
func SavePrimes(out io.Writer, list []uint64, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := csvio.WritePrimesFile(cfg.OutputFile, list); err != nil {
		return err
	}
	displaySaved(out, cfg)
	return nil
}

func displaySaved(out io.Writer, cfg OutputConfig) {
	if cfg.Quiet {
		return
	}
	fmt.Fprintf(out, "%s✓ Results saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
}
