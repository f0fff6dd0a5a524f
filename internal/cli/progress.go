package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/orchestration"
	"github.com/agbru/pisanocalc/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner, a progress bar and an ETA.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

// DisplayProgress animates a spinner whose suffix shows the batch progress
// until progressChan is closed. The suffix is refreshed on every update and
// on a ticker so the ETA keeps moving while a long period is searched.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(total)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(FormatProgressSuffix(agg))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(FormatProgressSuffix(agg))
				return
			}
			agg.Update(update)
			s.UpdateSuffix(FormatProgressSuffix(agg))
		case <-ticker.C:
			s.UpdateSuffix(FormatProgressSuffix(agg))
		}
	}
}

// FormatProgressSuffix renders " Pisano periods [bar] 40.0% ETA: 2s (2/5)".
func FormatProgressSuffix(agg *orchestration.ProgressAggregator) string {
	return fmt.Sprintf(" Pisano periods %s%s%s (%d/%d)",
		ui.ColorCyan(), format.FormatProgressBarWithETA(agg.Fraction(), agg.GetETA(), ProgressBarWidth), ui.ColorReset(),
		agg.Done(), agg.Total())
}
