package conditions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICMPReachable(t *testing.T) {
	t.Run("empty target is a configuration error", func(t *testing.T) {
		_, err := ICMPReachable("")
		require.Error(t, err)
	})

	t.Run("no targets is a configuration error", func(t *testing.T) {
		_, err := ICMPReachable()
		require.Error(t, err)
	})

	t.Run("unresolvable host is a probe error, not a clean negative", func(t *testing.T) {
		// .invalid never resolves, so the probe fails before any packet
		// is sent and the caller must skip with a diagnostic.
		cond, err := ICMPReachableWithin(time.Second, "host.invalid")
		require.NoError(t, err)

		gate, reason, err := cond.Check(context.Background())
		require.Error(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "icmp probe for host.invalid failed")
	})
}
