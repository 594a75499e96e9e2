// Package envgate wires the registry, the lock manager, the runner and
// the reporters into a harness that gates test entries on runtime
// conditions about the host environment.
package envgate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/envgate/envgate/locks"
	"github.com/envgate/envgate/registry"
	"github.com/envgate/envgate/reporting"
	"github.com/envgate/envgate/runner"
	"github.com/envgate/envgate/types"
)

// Harness owns one registered set of entries and runs it.
type Harness struct {
	config   *Config
	registry *registry.Registry
	locks    *locks.Manager
	runner   runner.TestRunner
	summary  *reporting.Summary

	running atomic.Bool
}

// New creates a harness whose registry is loaded from the configured
// checks file.
func New(config *Config) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	reg, err := registry.NewRegistry(registry.Config{
		Log:        config.Log,
		ChecksFile: config.ChecksFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}
	return NewWithRegistry(config, reg)
}

// NewWithRegistry creates a harness around a caller-populated registry.
// This is the library entrypoint: declare groups and entries on the
// registry, then run.
func NewWithRegistry(config *Config, reg *registry.Registry) (*Harness, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if reg == nil {
		return nil, errors.New("registry is required")
	}

	lockManager, err := locks.NewManager(config.LockDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create lock manager: %w", err)
	}

	testRunner, err := runner.NewTestRunner(runner.Config{
		Registry:   reg,
		Locks:      lockManager,
		Log:        config.Log,
		MaxWorkers: config.MaxWorkers,
		Timeout:    config.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create test runner: %w", err)
	}

	return &Harness{
		config:   config,
		registry: reg,
		locks:    lockManager,
		runner:   testRunner,
	}, nil
}

// Registry exposes the harness's registry for library-style
// registration before Run.
func (h *Harness) Registry() *registry.Registry {
	return h.registry
}

// Run executes every registered entry and aggregates the outcomes.
// Entry failures are carried in the summary, not in the error; a
// non-nil error means the run itself could not be carried out.
func (h *Harness) Run(ctx context.Context) (*reporting.Summary, error) {
	h.running.Store(true)
	defer h.running.Store(false)

	result, err := h.runner.RunAll(ctx)
	if err != nil {
		return nil, err
	}

	agg := reporting.NewAggregator(result.RunID)
	for _, res := range result.Results {
		agg.Add(res)
	}
	summary := agg.Finalize()
	// The runner measured the whole run; the aggregator only saw the
	// post-run stream.
	summary.Duration = result.Duration
	summary.Stats.StartTime = result.Stats.StartTime
	summary.Stats.EndTime = result.Stats.EndTime
	h.summary = summary
	return summary, nil
}

// Running reports whether a run is in flight.
func (h *Harness) Running() bool {
	return h.running.Load()
}

// Report writes the configured rendering of the summary.
func (h *Harness) Report(w io.Writer, summary *reporting.Summary) error {
	if h.config.JSONOutput {
		return reporting.WriteJSON(w, summary)
	}
	if err := reporting.WriteText(w, summary); err != nil {
		return err
	}
	h.printResultsTable(summary)
	return nil
}

// printResultsTable renders the per-entry results table to the console.
func (h *Harness) printResultsTable(summary *reporting.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Envgate Results (%s)", formatDuration(summary.Duration)))

	t.AppendHeader(table.Row{
		"Check", "Group", "Lock", "Duration", "Status", "Detail",
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Check", WidthMax: 50},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Detail", WidthMax: 60},
	})

	for _, res := range summary.Results {
		detail := ""
		switch res.Status {
		case types.TestStatusSkip:
			detail = res.Reason
		case types.TestStatusFail:
			detail = res.Error
		}
		t.AppendRow(table.Row{
			res.Metadata.Name,
			res.Metadata.Group,
			res.Metadata.Lock,
			formatDuration(res.Duration),
			getResultString(res.Status),
			detail,
		})
	}

	switch summary.Status {
	case types.TestStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		"",
		"",
		formatDuration(summary.Duration),
		fmt.Sprintf("%d/%d passed, %d failed, %d ignored",
			summary.Stats.Passed, summary.Stats.Total, summary.Stats.Failed, summary.Stats.Skipped),
		"",
	})

	t.Render()
}

// getResultString returns a marked string representing the result.
func getResultString(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

// formatDuration formats the duration to seconds with 1 decimal place.
func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
