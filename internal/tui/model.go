package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/pisanocalc/internal/errors"
	"github.com/agbru/pisanocalc/internal/format"
	"github.com/agbru/pisanocalc/internal/metrics"
	"github.com/agbru/pisanocalc/internal/orchestration"
)

// Layout constants for the dashboard.
const (
	recentResultsSize = 10
	tickInterval      = 500 * time.Millisecond
	minBarWidth       = 10
)

// Model is the root bubbletea model for the batch dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	bar     progress.Model
	help    help.Model
	keymap  KeyMap

	stop     *orchestration.StopFlag
	total    int
	latest   orchestration.AggregatedProgress
	recent   []orchestration.PeriodResult
	stopping bool
	done     bool
	batch    orchestration.BatchResult
	err      error

	memory *metrics.MemoryCollector
	width  int
}

// NewModel creates a dashboard for a batch of total primes. The stop key
// and quit both set stop.
func NewModel(total int, stop *orchestration.StopFlag, version string) Model {
	return Model{
		header:  NewHeaderModel(version),
		metrics: NewMetricsModel(),
		bar:     newProgressBar(),
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		stop:    stop,
		total:   total,
		latest:  orchestration.AggregatedProgress{Total: total},
		memory:  metrics.NewMemoryCollector(),
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), sampleMemStatsCmd(m.memory))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.metrics.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.bar.Width = max(msg.Width-40, minBarWidth)
		return m, nil

	case ProgressMsg:
		m.latest = msg.AggregatedProgress
		if msg.Done > 0 {
			m.recent = append(m.recent, msg.Latest)
			if len(m.recent) > recentResultsSize {
				m.recent = m.recent[len(m.recent)-recentResultsSize:]
			}
			m.metrics.AddResult(msg.Latest)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case BatchDoneMsg:
		m.done = true
		m.batch = msg.Batch
		m.err = msg.Err
		m.header.SetDone(m.finalStatus())
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(m.memory), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.stop.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Stop):
		if !m.done && !m.stopping {
			m.stop.Stop()
			m.stopping = true
			m.header.SetStatus(statusStoppedStyle.Render("STOPPING"))
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m Model) finalStatus() string {
	switch {
	case m.err != nil:
		return statusErrorStyle.Render("ERROR")
	case m.batch.StopRequested:
		return statusStoppedStyle.Render("STOPPED")
	default:
		return statusDoneStyle.Render("DONE")
	}
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	sections := []string{
		m.header.View(),
		m.progressView(),
		m.resultsView(),
		m.metrics.View(),
	}
	if m.done {
		sections = append(sections, m.summaryView())
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) progressView() string {
	line := fmt.Sprintf("%s %s %5.1f%%  %s  %s",
		metricLabelStyle.Render("Progress"),
		m.bar.ViewAs(m.latest.Fraction),
		m.latest.Fraction*100,
		metricValueStyle.Render(fmt.Sprintf("(%d/%d)", m.latest.Done, m.total)),
		dimStyle.Render("ETA: "+format.FormatETA(m.latest.ETA)))
	return panelStyle.Width(max(m.width-2, 0)).Render(line)
}

func (m Model) resultsView() string {
	if len(m.recent) == 0 {
		return panelStyle.Width(max(m.width-2, 0)).Render(dimStyle.Render("Waiting for the first period..."))
	}
	lines := make([]string, len(m.recent))
	for i, r := range m.recent {
		lines[i] = fmt.Sprintf("Prime: %s, Pisano Period: %s %s",
			primeStyle.Render(fmt.Sprint(r.Prime)),
			periodStyle.Render(fmt.Sprint(r.Period)),
			dimStyle.Render("("+format.FormatExecutionDuration(r.Duration)+")"))
	}
	return panelStyle.Width(max(m.width-2, 0)).Render(strings.Join(lines, "\n"))
}

func (m Model) summaryView() string {
	if m.err != nil {
		return statusErrorStyle.Render("Error: " + m.err.Error())
	}
	summary := fmt.Sprintf("Computed %d of %d Pisano period(s) in %s.",
		m.batch.Completed(), m.batch.Total, format.FormatExecutionDuration(m.batch.Elapsed))
	if m.batch.StopRequested {
		summary += " " + statusStoppedStyle.Render("Calculation stopped by user.")
	}
	return summary
}

// Run shows the dashboard while the batch runs. The program and the batch
// share one errgroup; quitting the dashboard stops the batch after the
// prime in flight, and the partial result is returned.
func Run(ctx context.Context, primes []uint64, opts orchestration.Options, stop *orchestration.StopFlag, version string, programOpts ...tea.ProgramOption) (orchestration.BatchResult, error) {
	// Rebuild styles from the current ui theme (set by app via InitTheme).
	initTUIStyles()
	if stop == nil {
		stop = &orchestration.StopFlag{}
	}

	g, gctx := errgroup.WithContext(ctx)
	ref := &programRef{}
	p := tea.NewProgram(NewModel(len(primes), stop, version),
		append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(gctx)}, programOpts...)...)
	// Inject the program reference before running so bridge goroutines can Send.
	ref.SetProgram(p)

	var (
		batch    orchestration.BatchResult
		batchErr error
	)
	g.Go(func() error {
		_, err := p.Run()
		stop.Stop()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return apperrors.WrapError(err, "dashboard failed")
		}
		return nil
	})
	g.Go(func() error {
		batch, batchErr = orchestration.ExecutePeriods(gctx, primes, opts, stop, &TUIProgressReporter{ref: ref}, io.Discard)
		ref.Send(BatchDoneMsg{Batch: batch, Err: batchErr})
		return nil
	})

	if err := g.Wait(); err != nil {
		return batch, err
	}
	return batch, batchErr
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		s := mc.Snapshot()
		return MemStatsMsg{
			HeapAlloc:    s.HeapAlloc,
			HeapSys:      s.HeapSys,
			NumGC:        s.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}
