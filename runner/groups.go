package runner

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/envgate/envgate/metrics"
	"github.com/envgate/envgate/registry"
)

// groupSet drives the per-run lifecycle of group environments. Setup is
// lazy: it runs under the set's lock the first time a member entry
// actually executes, and its outcome (handle and error alike) is cached
// so a failing setup is reported uniformly to every member instead of
// being retried. The pending count starts at the group's full member
// count and every member decrements it exactly once on any terminal
// outcome, so teardown fires exactly once, after the last member,
// whatever the pass/fail/skip mix.
type groupSet struct {
	mu     sync.Mutex
	log    log.Logger
	states map[string]*groupState
}

type groupState struct {
	env      registry.Environment
	pending  int
	started  bool
	handle   any
	setupErr error
	tornDown bool
}

func newGroupSet(reg *registry.Registry, logger log.Logger) *groupSet {
	states := make(map[string]*groupState)
	for name, size := range reg.GroupSizes() {
		env, ok := reg.Group(name)
		if !ok {
			// Register rejects entries with undeclared groups.
			continue
		}
		states[name] = &groupState{env: env, pending: size}
	}
	return &groupSet{log: logger, states: states}
}

// enter makes the group's environment live, running setup on first use.
// It returns the cached setup error for every member once setup failed.
func (g *groupSet) enter(name string) error {
	if name == "" {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.states[name]
	if !ok {
		return fmt.Errorf("unknown group %q", name)
	}
	if !st.started {
		st.started = true
		g.log.Debug("Group setup", "group", name)
		st.handle, st.setupErr = st.env.Setup()
		if st.setupErr != nil {
			g.log.Error("Group setup failed", "group", name, "error", st.setupErr)
			metrics.RecordError("group_setup")
		}
	}
	if st.setupErr != nil {
		return fmt.Errorf("group %q setup failed: %w", name, st.setupErr)
	}
	return nil
}

// leave records that one member entry reached a terminal state. When the
// last member leaves, teardown runs whenever setup was invoked, even for
// a successful setup that returned a nil handle. A group whose members
// were all skipped never ran setup and gets no teardown, and neither
// does a failed setup that produced nothing to tear down.
func (g *groupSet) leave(name string) {
	if name == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.states[name]
	if !ok {
		return
	}
	st.pending--
	if st.pending > 0 || st.tornDown {
		return
	}
	st.tornDown = true
	if !st.started {
		return
	}
	if st.setupErr != nil && st.handle == nil {
		return
	}
	g.log.Debug("Group teardown", "group", name)
	if err := st.env.Teardown(st.handle); err != nil {
		g.log.Error("Group teardown failed", "group", name, "error", err)
		metrics.RecordError("group_teardown")
	}
}
