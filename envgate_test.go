package envgate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/envgate/envgate/conditions"
	"github.com/envgate/envgate/registry"
	"github.com/envgate/envgate/types"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		LockDir:    t.TempDir(),
		MaxWorkers: 2,
		Timeout:    30 * time.Second,
	}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = NewWithRegistry(testConfig(t), nil)
	require.Error(t, err)
}

func TestHarnessRunWithRegistry(t *testing.T) {
	reg, err := registry.NewRegistry(registry.Config{})
	require.NoError(t, err)

	require.NoError(t, reg.Register(registry.Entry{
		Name: "always-passes",
		Fn:   func(context.Context) error { return nil },
	}))
	require.NoError(t, reg.Register(registry.Entry{
		Name:       "needs-missing-env",
		Conditions: []conditions.Condition{conditions.EnvSet("ENVGATE_TEST_UNSET_VAR_XYZ")},
		Fn:         func(context.Context) error { return nil },
	}))
	require.NoError(t, reg.Register(registry.Entry{
		Name: "always-fails",
		Fn:   func(context.Context) error { return errors.New("boom") },
	}))

	h, err := NewWithRegistry(testConfig(t), reg)
	require.NoError(t, err)
	assert.False(t, h.Running())

	summary, err := h.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, h.Running())

	assert.Equal(t, types.TestStatusFail, summary.Status)
	assert.Equal(t, 3, summary.Stats.Total)
	assert.Equal(t, 1, summary.Stats.Passed)
	assert.Equal(t, 1, summary.Stats.Failed)
	assert.Equal(t, 1, summary.Stats.Skipped)
	assert.Equal(t, 1, summary.ExitCode())
	assert.Greater(t, summary.Duration, time.Duration(0))
}

func TestHarnessFromChecksFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
checks:
  - name: has-home
    conditions:
      - kind: env
        targets: [HOME]
  - name: has-unicorn
    conditions:
      - kind: env
        targets: [ENVGATE_TEST_UNSET_VAR_XYZ]
`), 0o644))

	cfg := testConfig(t)
	cfg.ChecksFile = path
	h, err := New(cfg)
	require.NoError(t, err)

	t.Setenv("HOME", "/home/tester")
	summary, err := h.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Stats.Passed)
	assert.Equal(t, 1, summary.Stats.Skipped)
	assert.Zero(t, summary.Stats.Failed)
	assert.Equal(t, 0, summary.ExitCode())
}

func TestHarnessReportJSON(t *testing.T) {
	reg, err := registry.NewRegistry(registry.Config{})
	require.NoError(t, err)
	require.NoError(t, reg.Register(registry.Entry{
		Name: "only",
		Fn:   func(context.Context) error { return nil },
	}))

	cfg := testConfig(t)
	cfg.JSONOutput = true
	h, err := NewWithRegistry(cfg, reg)
	require.NoError(t, err)

	summary, err := h.Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, h.Report(&buf, summary))

	var report map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "pass", report["status"])
	assert.Equal(t, float64(1), report["total"])
}
