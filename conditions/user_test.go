package conditions

import (
	"context"
	"os"
	"os/user"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	gate, reason, err := Root().Check(context.Background())
	require.NoError(t, err)
	if os.Geteuid() == 0 {
		assert.True(t, gate)
	} else {
		assert.False(t, gate)
		assert.Equal(t, "because this case should run with root", reason)
	}
}

func TestUser(t *testing.T) {
	ctx := context.Background()
	current, err := user.Current()
	require.NoError(t, err)

	t.Run("gates true for the current user", func(t *testing.T) {
		gate, _, err := User(current.Username).Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})

	t.Run("gates false for another user", func(t *testing.T) {
		gate, reason, err := User("envgate-nobody").Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "should run with user envgate-nobody")
	})
}

func TestGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("gates false for an unknown group", func(t *testing.T) {
		gate, reason, err := Group("envgate-no-such-group").Check(ctx)
		require.NoError(t, err)
		assert.False(t, gate)
		assert.Contains(t, reason, "run user in group envgate-no-such-group")
	})

	t.Run("gates true for a group the user belongs to", func(t *testing.T) {
		current, err := user.Current()
		require.NoError(t, err)
		gids, err := current.GroupIds()
		require.NoError(t, err)
		require.NotEmpty(t, gids)
		grp, err := user.LookupGroupId(gids[0])
		if err != nil {
			t.Skipf("gid %s has no name on this host", gids[0])
		}
		gate, _, err := Group(grp.Name).Check(ctx)
		require.NoError(t, err)
		assert.True(t, gate)
	})
}
