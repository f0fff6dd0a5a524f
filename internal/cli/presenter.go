package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/metrics"
	"github.com/agbru/pisanocalc/internal/orchestration"
	"github.com/agbru/pisanocalc/internal/ui"
)

// StoppedMessage is printed when the stop key ended a batch.
const StoppedMessage = "Calculation stopped by user."

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct {
	// Quiet prints bare "prime,period" lines and no summary.
	Quiet bool
	// Verbose adds per-prime search times.
	Verbose bool
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentBatch writes one line per result and a summary.
func (p CLIResultPresenter) PresentBatch(batch orchestration.BatchResult, out io.Writer) {
	if p.Quiet {
		DisplayQuietPeriods(out, batch.Results)
		return
	}
	for _, r := range batch.Results {
		DisplayPeriod(out, r, p.Verbose)
	}
	DisplayBatchSummary(out, batch)
}

// FormatPeriod renders "Prime: p, Pisano Period: q".
func FormatPeriod(r orchestration.PeriodResult) string {
	return fmt.Sprintf("Prime: %d, Pisano Period: %d", r.Prime, r.Period)
}

// FormatQuietPeriod renders "p,q" for scripting.
func FormatQuietPeriod(r orchestration.PeriodResult) string {
	return strconv.FormatUint(r.Prime, 10) + "," + strconv.FormatUint(r.Period, 10)
}

// DisplayPeriod writes a single result line.
func DisplayPeriod(out io.Writer, r orchestration.PeriodResult, verbose bool) {
	fmt.Fprintf(out, "Prime: %s%d%s, Pisano Period: %s%d%s",
		ui.ColorCyan(), r.Prime, ui.ColorReset(), ui.ColorMagenta(), r.Period, ui.ColorReset())
	if verbose {
		fmt.Fprintf(out, " %s(%s)%s", ui.ColorGrey(), format.FormatExecutionDuration(r.Duration), ui.ColorReset())
	}
	fmt.Fprintln(out)
}

// DisplayQuietPeriods writes every result as "p,q".
func DisplayQuietPeriods(out io.Writer, results []orchestration.PeriodResult) {
	for _, r := range results {
		fmt.Fprintln(out, FormatQuietPeriod(r))
	}
}

// DisplayBatchSummary reports how much of the batch completed.
func DisplayBatchSummary(out io.Writer, batch orchestration.BatchResult) {
	fmt.Fprintf(out, "\nComputed %s%s%s of %s Pisano period(s) in %s%s%s.\n",
		ui.ColorGreen(), format.FormatCount(batch.Completed()), ui.ColorReset(),
		format.FormatCount(batch.Total),
		ui.ColorYellow(), format.FormatExecutionDuration(batch.Elapsed), ui.ColorReset())
	if batch.StopRequested {
		fmt.Fprintf(out, "%s%s%s\n", ui.ColorYellow(), StoppedMessage, ui.ColorReset())
	}
}

// DisplayPrimes writes one prime per line.
func DisplayPrimes(out io.Writer, list []uint64) {
	buf := make([]byte, 0, 16)
	for _, p := range list {
		buf = strconv.AppendUint(buf[:0], p, 10)
		buf = append(buf, '\n')
		out.Write(buf)
	}
}

// DisplayPrimesSummary reports the size of a generated list.
func DisplayPrimesSummary(out io.Writer, list []uint64, elapsed time.Duration) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(out, "Generated %s%s%s prime(s) in %s%s%s (largest: %s%s%s).\n",
		ui.ColorGreen(), format.FormatCount(len(list)), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(elapsed), ui.ColorReset(),
		ui.ColorCyan(), format.FormatCount(list[len(list)-1]), ui.ColorReset())
}

// DisplayPrimality writes "n is prime" or "n is not prime".
func DisplayPrimality(out io.Writer, n uint64, prime bool) {
	if prime {
		fmt.Fprintf(out, "%d is %sprime%s\n", n, ui.ColorGreen(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%d is %snot prime%s\n", n, ui.ColorRed(), ui.ColorReset())
}

// DisplayMemoryStats shows the memory used by a run.
func DisplayMemoryStats(out io.Writer, usage metrics.MemoryUsage) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(usage.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(usage.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", usage.GCCycles)
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
