package conditions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSet(t *testing.T) {
	ctx := context.Background()

	t.Run("set variable gates true", func(t *testing.T) {
		t.Setenv("ENVGATE_TEST_VAR", "1")
		gate, reason, err := EnvSet("ENVGATE_TEST_VAR").Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
		assert.Empty(t, reason)
	})

	t.Run("empty value still counts as set", func(t *testing.T) {
		t.Setenv("ENVGATE_TEST_EMPTY", "")
		gate, _, err := EnvSet("ENVGATE_TEST_EMPTY").Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})

	t.Run("missing variable gates false with its name", func(t *testing.T) {
		gate, reason, err := EnvSet("ENVGATE_NOTHING_DEFINED_XYZ").Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "ENVGATE_NOTHING_DEFINED_XYZ")
	})

	t.Run("conjunction reports every missing variable", func(t *testing.T) {
		t.Setenv("ENVGATE_TEST_VAR", "1")
		gate, reason, err := EnvSet("ENVGATE_TEST_VAR", "ENVGATE_MISSING_A", "ENVGATE_MISSING_B").Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "ENVGATE_MISSING_A")
		assert.Contains(t, reason, "ENVGATE_MISSING_B")
		assert.NotContains(t, reason, "ENVGATE_TEST_VAR")
	})
}

func TestEnvNotSet(t *testing.T) {
	ctx := context.Background()

	t.Run("absent variable gates true", func(t *testing.T) {
		gate, _, err := EnvNotSet("ENVGATE_NOTHING_DEFINED_XYZ").Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})

	t.Run("present variable gates false", func(t *testing.T) {
		t.Setenv("ENVGATE_TEST_CI", "true")
		gate, reason, err := EnvNotSet("ENVGATE_TEST_CI").Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "ENVGATE_TEST_CI")
	})
}
