package conditions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUCoreAtLeast(t *testing.T) {
	ctx := context.Background()

	t.Run("one core is always present", func(t *testing.T) {
		gate, _, err := CPUCoreAtLeast(1).Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})

	t.Run("absurd core count gates false", func(t *testing.T) {
		gate, reason, err := CPUCoreAtLeast(100000).Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "cpu core less than 100000")
	})

	t.Run("physical variant words its reason differently", func(t *testing.T) {
		gate, reason, err := PhysicalCoreAtLeast(100000).Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "physical cpu core")
	})
}

func TestMemAtLeast(t *testing.T) {
	ctx := context.Background()

	t.Run("one byte is always available", func(t *testing.T) {
		cond, err := MemAtLeast("1B")
		require.NoError(t, err)
		gate, _, err := cond.Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})

	t.Run("absurd size gates false with the size string", func(t *testing.T) {
		cond, err := MemAtLeast("999999GB")
		require.NoError(t, err)
		gate, reason, err := cond.Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "999999GB")
	})

	t.Run("unparsable size is a configuration error", func(t *testing.T) {
		_, err := MemAtLeast("lots of ram")
		require.Error(t, err)
	})
}

func TestSwapAtLeast(t *testing.T) {
	t.Run("absurd size gates false", func(t *testing.T) {
		cond, err := SwapAtLeast("999999GB")
		require.NoError(t, err)
		gate, reason, err := cond.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "swap less than")
	})

	t.Run("unparsable size is a configuration error", func(t *testing.T) {
		_, err := SwapAtLeast("")
		require.Error(t, err)
	})
}
