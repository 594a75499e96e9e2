// Package runner executes registered test entries: it evaluates each
// entry's conditions, serializes entries sharing a named lock, keeps
// group environments alive for exactly the span of their members, and
// records one outcome per entry in registration order.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/envgate/envgate/conditions"
	"github.com/envgate/envgate/locks"
	"github.com/envgate/envgate/metrics"
	"github.com/envgate/envgate/registry"
	"github.com/envgate/envgate/types"
)

// Result captures a complete run.
type Result struct {
	RunID string
	// Results holds one entry outcome each, in registration order.
	Results  []*types.TestResult
	Status   types.TestStatus
	Duration time.Duration
	Stats    types.RunStats
}

// TestRunner defines the interface for executing a registered set.
type TestRunner interface {
	RunAll(ctx context.Context) (*Result, error)
}

// Config contains runner configuration.
type Config struct {
	Registry *registry.Registry
	Locks    *locks.Manager
	Log      log.Logger
	// MaxWorkers is the worker-pool width. Values below 2 run entries
	// one at a time in registration order.
	MaxWorkers int
	// Timeout is the global deadline for the whole run; zero means no
	// deadline. Cancellation is cooperative: entries not yet running are
	// failed, running bodies finish naturally.
	Timeout time.Duration
}

type runner struct {
	registry *registry.Registry
	locks    *locks.Manager
	log      log.Logger
	workers  int
	timeout  time.Duration
}

// NewTestRunner creates a new runner instance.
func NewTestRunner(cfg Config) (TestRunner, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Locks == nil {
		return nil, fmt.Errorf("lock manager is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	workers := cfg.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	return &runner{
		registry: cfg.Registry,
		locks:    cfg.Locks,
		log:      cfg.Log,
		workers:  workers,
		timeout:  cfg.Timeout,
	}, nil
}

// RunAll executes every registered entry and returns the aggregated
// result. Entry-level failures (body errors, lock timeouts, group setup
// errors) are captured in the result, never returned as an error here.
func (r *runner) RunAll(ctx context.Context) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	entries := r.registry.Entries()
	if len(entries) == 0 {
		return nil, fmt.Errorf("no entries registered")
	}
	r.log.Info("Starting run", "run_id", runID, "entries", len(entries), "workers", r.workers)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	groups := newGroupSet(r.registry, r.log)
	results := make([]*types.TestResult, len(entries))

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.runEntry(ctx, entries[i], groups)
			}
		}()
	}
	for i := range entries {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	result := &Result{
		RunID:   runID,
		Results: results,
		Stats:   types.RunStats{StartTime: start},
	}
	for _, res := range results {
		result.Stats.Record(res.Status)
		metrics.RecordCheck(runID, res.Metadata.Name, string(res.Status))
	}
	result.Duration = time.Since(start)
	result.Stats.EndTime = time.Now()
	result.Status = overallStatus(result.Stats)
	metrics.RecordRun(runID, string(result.Status), result.Stats.Total, result.Stats.Passed, result.Stats.Failed, result.Stats.Skipped, result.Duration)

	r.log.Info("Run finished",
		"run_id", runID,
		"status", result.Status,
		"passed", result.Stats.Passed,
		"failed", result.Stats.Failed,
		"ignored", result.Stats.Skipped,
		"duration", result.Duration)
	return result, nil
}

// runEntry walks one entry through its state machine and always returns
// a terminal result. The group pending count is decremented on every
// path out of this function.
func (r *runner) runEntry(ctx context.Context, entry registry.Entry, groups *groupSet) *types.TestResult {
	start := time.Now()
	result := &types.TestResult{
		Metadata: types.EntryMetadata{Name: entry.Name, Group: entry.Group},
	}
	if entry.Lock != nil {
		result.Metadata.Lock = entry.Lock.Name
	}
	defer func() { result.Duration = time.Since(start) }()

	// Resources are released in reverse-acquisition order: the group
	// reference goes first (it was taken last), then the lock. Every
	// path out of this function gives the group back exactly once.
	var lockHandle *locks.Handle
	release := func() {
		groups.leave(entry.Group)
		if lockHandle != nil {
			if err := lockHandle.Release(); err != nil {
				r.log.Error("Lock release failed", "name", entry.Name, "lock", lockHandle.Name(), "error", err)
			}
		}
	}

	r.log.Debug("Entry state", "name", entry.Name, "state", types.EntryEvaluating)
	if err := ctx.Err(); err != nil {
		result.Status = types.TestStatusFail
		result.Error = fmt.Sprintf("timeout: run deadline exceeded before evaluation: %v", err)
		release()
		return result
	}

	gate, reason, err := conditions.All(ctx, entry.Conditions)
	if err != nil {
		// An ambiguous probe must never let the body run spuriously.
		r.log.Warn("Condition probe errored", "name", entry.Name, "error", err)
		metrics.RecordError("condition_probe")
		result.Status = types.TestStatusSkip
		result.Reason = reason
		release()
		return result
	}
	if !gate {
		r.log.Debug("Entry state", "name", entry.Name, "state", types.EntryIgnored, "reason", reason)
		result.Status = types.TestStatusSkip
		result.Reason = reason
		release()
		return result
	}

	if entry.Lock != nil {
		lockHandle, err = r.locks.Acquire(ctx, *entry.Lock)
		if err != nil {
			metrics.RecordError("lock_acquire")
			result.Status = types.TestStatusFail
			result.Error = err.Error()
			lockHandle = nil
			release()
			return result
		}
	}

	if err := groups.enter(entry.Group); err != nil {
		result.Status = types.TestStatusFail
		result.Error = err.Error()
		release()
		return result
	}

	r.log.Debug("Entry state", "name", entry.Name, "state", types.EntryRunning)
	bodyErr := runBody(ctx, entry.Fn)
	release()

	if bodyErr != nil {
		r.log.Debug("Entry state", "name", entry.Name, "state", types.EntryFailed, "error", bodyErr)
		result.Status = types.TestStatusFail
		result.Error = bodyErr.Error()
		return result
	}
	r.log.Debug("Entry state", "name", entry.Name, "state", types.EntryPassed)
	result.Status = types.TestStatusPass
	return result
}

// runBody invokes the entry body, converting a panic into an ordinary
// failure so one entry can never abort its siblings.
func runBody(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx)
}

// overallStatus mirrors the gate semantics of the acceptance harness:
// any failure fails the run, a clean run with skips is reported as skip,
// and only the failure count affects the process exit status.
func overallStatus(stats types.RunStats) types.TestStatus {
	switch {
	case stats.Failed > 0:
		return types.TestStatusFail
	case stats.Skipped > 0:
		return types.TestStatusSkip
	default:
		return types.TestStatusPass
	}
}
