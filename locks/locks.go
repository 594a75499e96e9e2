// Package locks implements named cross-process mutual exclusion over a
// shared lock directory. A lock is held by whichever process managed to
// exclusively create the lock file for its name; release deletes the
// file. The exclusive create is atomic on local filesystems but not
// guaranteed on all network filesystems, and a holder that crashes
// leaves an orphaned lock file behind until it is removed by hand.
// Both are documented limitations rather than something the package
// tries to repair on its own.
package locks

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/pkg/errors"
)

const (
	// DefaultTimeout bounds how long Acquire waits for a contended lock.
	DefaultTimeout = 60 * time.Second
	// pollInterval is the fixed backoff between create attempts.
	pollInterval = 100 * time.Millisecond
)

// ErrTimeout is returned when a lock cannot be acquired within its
// timeout. Callers record it as an entry-level failure.
var ErrTimeout = errors.New("lock acquisition timed out")

// Spec names a mutual-exclusion domain. Entries sharing a Name are
// serialized across goroutines and across processes sharing the lock
// directory. A zero Timeout means DefaultTimeout.
type Spec struct {
	Name    string
	Timeout time.Duration
}

// Manager hands out handles for named locks backed by one directory.
type Manager struct {
	dir string
}

// NewManager creates the lock directory if needed. An empty dir selects
// a well-known location under the system temp directory so separate
// runner processes on one host contend on the same files.
func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "envgate-locks")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating lock directory %s", dir)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the directory holding the lock files.
func (m *Manager) Dir() string {
	return m.dir
}

// Handle is a held lock. Release it exactly once.
type Handle struct {
	name string
	path string
}

// Name returns the lock name the handle serializes on.
func (h *Handle) Name() string {
	return h.name
}

// Acquire takes the named lock, polling at a fixed interval until the
// exclusive create succeeds, the spec's timeout elapses (ErrTimeout), or
// the context is done.
func (m *Manager) Acquire(ctx context.Context, spec Spec) (*Handle, error) {
	if spec.Name == "" {
		return nil, errors.New("lock name is required")
	}
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	path := filepath.Join(m.dir, encodeName(spec.Name))
	start := time.Now()

	for {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			// Record the holder pid to help a human diagnose orphans.
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return &Handle{name: spec.Name, path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, errors.Wrapf(err, "creating lock file %s", path)
		}
		if time.Since(start) >= timeout {
			return nil, errors.Wrapf(ErrTimeout, "lock %q after %s", spec.Name, timeout)
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "waiting for lock %q", spec.Name)
		case <-time.After(pollInterval):
		}
	}
}

// Release deletes the lock file. A second Release is a no-op.
func (h *Handle) Release() error {
	if h == nil || h.path == "" {
		return nil
	}
	path := h.path
	h.path = ""
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "releasing lock %q", h.name)
	}
	return nil
}

var safeName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// encodeName maps a lock name to a collision-free file name. Names that
// are already filesystem-safe are used as-is to keep the directory
// legible; anything else is hex encoded under an "enc." prefix, which a
// safe name can never produce since '.' is outside the safe set.
func encodeName(name string) string {
	if safeName.MatchString(name) {
		return name + ".lock"
	}
	return "enc." + hex.EncodeToString([]byte(name)) + ".lock"
}
