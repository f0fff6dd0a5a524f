// Package orchestration runs the Pisano period batch. It owns the
// cooperative stop flag, publishes progress to a ProgressReporter, and
// returns the ordered results. Presentation lives behind the
// ProgressReporter and ResultPresenter interfaces.
package orchestration
