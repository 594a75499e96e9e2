// Package registry holds the ordered set of test entries and the group
// environments they reference. Registration is the configuration
// boundary: anything malformed is rejected here, before any entry runs.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/log"

	"github.com/envgate/envgate/conditions"
	"github.com/envgate/envgate/locks"
)

// ConfigError marks a programming mistake in a registration (duplicate
// name, missing body, undeclared group). It is fatal for the whole run.
type ConfigError struct {
	Entry string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Msg)
	}
	return fmt.Sprintf("invalid configuration for %q: %s", e.Entry, e.Msg)
}

// Environment is a group-scoped mock environment. Setup runs at most
// once per group per run, before the first member entry that executes;
// Teardown receives Setup's handle and runs exactly once after the last
// member finishes. Teardown is attempted whenever Setup returned a
// handle, even when Setup also returned an error.
type Environment struct {
	Setup    func() (handle any, err error)
	Teardown func(handle any) error
}

// Entry is one registered test case. Immutable once registered.
type Entry struct {
	Name       string
	Conditions []conditions.Condition
	Lock       *locks.Spec
	Group      string
	Fn         func(ctx context.Context) error
}

// Registry manages test entries in registration order.
type Registry struct {
	mu      sync.RWMutex
	log     log.Logger
	entries []Entry
	names   map[string]struct{}
	groups  map[string]Environment
}

// Config contains registry configuration.
type Config struct {
	Log log.Logger
	// ChecksFile optionally points at a YAML checks file loaded at
	// construction time.
	ChecksFile string
}

// NewRegistry creates a registry and, when configured, loads the checks
// file immediately so configuration mistakes surface before any run.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
	}
	r := &Registry{
		log:    cfg.Log,
		names:  make(map[string]struct{}),
		groups: make(map[string]Environment),
	}
	if cfg.ChecksFile != "" {
		if err := r.LoadChecksFile(cfg.ChecksFile); err != nil {
			return nil, fmt.Errorf("failed to load checks file: %w", err)
		}
	}
	return r, nil
}

// AddGroup declares a group environment. Entries referencing the group
// must be registered after it.
func (r *Registry) AddGroup(name string, env Environment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return &ConfigError{Msg: "group name is required"}
	}
	if _, exists := r.groups[name]; exists {
		return &ConfigError{Msg: fmt.Sprintf("group %q already declared", name)}
	}
	if env.Setup == nil || env.Teardown == nil {
		return &ConfigError{Msg: fmt.Sprintf("group %q needs both setup and teardown", name)}
	}
	r.groups[name] = env
	return nil
}

// Register appends an entry. Order of registration is the order the
// runner reports in.
func (r *Registry) Register(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Name == "" {
		return &ConfigError{Msg: "entry name is required"}
	}
	if _, dup := r.names[e.Name]; dup {
		return &ConfigError{Entry: e.Name, Msg: "duplicate entry name"}
	}
	if e.Fn == nil {
		return &ConfigError{Entry: e.Name, Msg: "entry body is required"}
	}
	if e.Lock != nil && e.Lock.Name == "" {
		return &ConfigError{Entry: e.Name, Msg: "lock spec needs a name"}
	}
	if e.Group != "" {
		if _, ok := r.groups[e.Group]; !ok {
			return &ConfigError{Entry: e.Name, Msg: fmt.Sprintf("references undeclared group %q", e.Group)}
		}
	}
	for i, c := range e.Conditions {
		if c == nil {
			return &ConfigError{Entry: e.Name, Msg: fmt.Sprintf("condition %d is nil", i)}
		}
	}

	r.names[e.Name] = struct{}{}
	r.entries = append(r.entries, e)
	r.log.Debug("Registered entry", "name", e.Name, "group", e.Group, "conditions", len(e.Conditions))
	return nil
}

// Entries returns the registered entries in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Group returns the environment declared for a group name.
func (r *Registry) Group(name string) (Environment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	env, ok := r.groups[name]
	return env, ok
}

// GroupSizes returns the member count per group, counting every entry
// whatever its eventual outcome. The runner uses these as the pending
// counts that drive teardown.
func (r *Registry) GroupSizes() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sizes := make(map[string]int)
	for _, e := range r.entries {
		if e.Group != "" {
			sizes[e.Group]++
		}
	}
	return sizes
}
