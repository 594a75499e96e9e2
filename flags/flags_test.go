package flags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestFlagsCarryEnvVars(t *testing.T) {
	for _, f := range Flags {
		docFlag, ok := f.(cli.DocGenerationFlag)
		require.True(t, ok, "flag %v does not support env vars", f.Names())
		envVars := docFlag.GetEnvVars()
		require.NotEmpty(t, envVars, "flag %v has no env var", f.Names())
		for _, env := range envVars {
			assert.Contains(t, env, EnvVarPrefix+"_")
		}
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout(0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), d)

	d, err = ParseTimeout(2 * time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = ParseTimeout(-time.Second)
	require.Error(t, err)
}
