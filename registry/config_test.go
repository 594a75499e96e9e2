package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChecksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "checks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadChecksFile(t *testing.T) {
	path := writeChecksFile(t, `
checks:
  - name: database-ready
    lock: pg
    lock_timeout: 10s
    conditions:
      - kind: env
        targets: [DATABASE_URL]
      - kind: tcp
        targets: ["127.0.0.1:5432"]
  - name: enough-iron
    conditions:
      - kind: cpu_core
        count: 2
      - kind: mem
        size: 1GB
`)

	r, err := NewRegistry(Config{ChecksFile: path})
	require.NoError(t, err)

	entries := r.Entries()
	require.Len(t, entries, 2)

	db := entries[0]
	assert.Equal(t, "database-ready", db.Name)
	require.NotNil(t, db.Lock)
	assert.Equal(t, "pg", db.Lock.Name)
	assert.Equal(t, 10*time.Second, db.Lock.Timeout)
	assert.Len(t, db.Conditions, 2)
	require.NotNil(t, db.Fn)

	iron := entries[1]
	assert.Equal(t, "enough-iron", iron.Name)
	assert.Nil(t, iron.Lock)
	assert.Len(t, iron.Conditions, 2)
}

func TestLoadChecksFileWithGroups(t *testing.T) {
	path := writeChecksFile(t, `
checks:
  - name: redis-ready
    group: redis
    conditions:
      - kind: tcp
        targets: ["127.0.0.1:6379"]
  - name: standalone
    conditions:
      - kind: root
`)

	t.Run("checks join groups declared before loading", func(t *testing.T) {
		r := newTestRegistry(t)
		require.NoError(t, r.AddGroup("redis", noopEnvironment()))
		require.NoError(t, r.LoadChecksFile(path))

		entries := r.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "redis", entries[0].Group)
		assert.Empty(t, entries[1].Group)
		assert.Equal(t, map[string]int{"redis": 1}, r.GroupSizes())
	})

	t.Run("undeclared group is a configuration error", func(t *testing.T) {
		r := newTestRegistry(t)
		err := r.LoadChecksFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `undeclared group "redis"`)
	})
}

func TestLoadChecksFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no checks declared",
			content: "checks: []\n",
			wantErr: "declares no checks",
		},
		{
			name: "unknown condition kind",
			content: `
checks:
  - name: weird
    conditions:
      - kind: phase_of_moon
`,
			wantErr: `unknown condition kind "phase_of_moon"`,
		},
		{
			name: "bad lock timeout",
			content: `
checks:
  - name: locked
    lock: db
    lock_timeout: soonish
    conditions:
      - kind: root
`,
			wantErr: `invalid lock_timeout "soonish"`,
		},
		{
			name: "env condition without targets",
			content: `
checks:
  - name: empty-env
    conditions:
      - kind: env
`,
			wantErr: "env condition needs targets",
		},
		{
			name: "not yaml at all",
			content: "{{{",
			wantErr: "failed to parse checks file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeChecksFile(t, tt.content)
			_, err := NewRegistry(Config{ChecksFile: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadChecksFileMissing(t *testing.T) {
	_, err := NewRegistry(Config{ChecksFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read checks file")
}
