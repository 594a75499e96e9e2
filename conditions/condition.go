// Package conditions provides the runtime predicates that gate test
// entries on the state of the host environment. Each condition reports
// whether the entry may proceed, and a human-readable reason when it may
// not. Conditions never fail for an expected negative outcome (a missing
// file, an unreachable host); those are ordinary gate=false results. A
// non-nil error means the probe itself misbehaved, and the caller must
// treat the entry as skipped with a diagnostic rather than run it on
// ambiguous environment state.
package conditions

import (
	"context"
	"time"
)

// DefaultProbeTimeout bounds network probes (HTTP, TCP, ICMP) so a dead
// target cannot stall the worker slot for longer than a few seconds.
const DefaultProbeTimeout = 3 * time.Second

// Condition is a single runtime predicate. Check is a pure function of
// the environment observed at call time: the same environment yields the
// same gate and reason.
type Condition interface {
	// Check reports gate=true when the condition is satisfied. When
	// gate=false, reason holds the skip explanation shown in the report.
	Check(ctx context.Context) (gate bool, reason string, err error)
}

// All evaluates conditions in declaration order and short-circuits at
// the first one that gates or errors, so an entry's skip reason is
// always the first failing condition's reason.
func All(ctx context.Context, conds []Condition) (bool, string, error) {
	for _, c := range conds {
		gate, reason, err := c.Check(ctx)
		if err != nil {
			return false, reason, err
		}
		if !gate {
			return false, reason, nil
		}
	}
	return true, "", nil
}
