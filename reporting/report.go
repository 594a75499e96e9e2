// Package reporting aggregates entry outcomes into an immutable run
// summary and renders it for humans (text) and machines (JSON). Both
// renderings derive from the same Summary, so the two views can never
// disagree.
package reporting

import (
	"time"

	"github.com/envgate/envgate/types"
)

// Summary is the finalized aggregate of one run: every entry outcome in
// registration order plus the counters and wall-clock duration.
type Summary struct {
	RunID    string
	Results  []*types.TestResult
	Status   types.TestStatus
	Stats    types.RunStats
	Duration time.Duration
}

// Aggregator builds a Summary incrementally from the ordered outcome
// stream. It is not safe for concurrent use; the runner feeds it after
// all workers have finished, in registration order.
type Aggregator struct {
	runID   string
	start   time.Time
	results []*types.TestResult
	stats   types.RunStats
	final   bool
}

// NewAggregator starts an aggregation for one run.
func NewAggregator(runID string) *Aggregator {
	return &Aggregator{
		runID: runID,
		start: time.Now(),
		stats: types.RunStats{StartTime: time.Now()},
	}
}

// Add folds one outcome into the running counters. The invariant
// total == passed + failed + ignored holds after every Add.
func (a *Aggregator) Add(result *types.TestResult) {
	if a.final {
		panic("reporting: Add after Finalize")
	}
	a.results = append(a.results, result)
	a.stats.Record(result.Status)
}

// Finalize freezes the aggregate into a Summary.
func (a *Aggregator) Finalize() *Summary {
	a.final = true
	a.stats.EndTime = time.Now()
	return &Summary{
		RunID:    a.runID,
		Results:  a.results,
		Status:   statusOf(a.stats),
		Stats:    a.stats,
		Duration: a.stats.EndTime.Sub(a.start),
	}
}

func statusOf(stats types.RunStats) types.TestStatus {
	switch {
	case stats.Failed > 0:
		return types.TestStatusFail
	case stats.Skipped > 0:
		return types.TestStatusSkip
	default:
		return types.TestStatusPass
	}
}

// ExitCode maps the summary to the process exit status: zero exactly
// when nothing failed, whatever the ignored count.
func (s *Summary) ExitCode() int {
	if s.Stats.Failed > 0 {
		return 1
	}
	return 0
}
