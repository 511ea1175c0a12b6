package cli_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cfgs and dump tests rely on the process-wide config cache resolving to
// the embedded host default, so they must not set any PYBUILD_* variables.

func TestCfgsCmd(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := executeCmd(t, "cfgs")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	assert.Contains(t, lines, "pybuild:cfg=Py_3_7")

	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "pybuild:"), "unexpected output line %q", line)
	}
}

func TestDumpCmd(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := executeCmd(t, "dump")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "implementation=CPython\n")
	assert.Contains(t, stdout, "version=3.")
}

//nolint:paralleltest // Mutates the process environment.
func TestLinkArgsCmd(t *testing.T) {
	t.Run("darwin", func(t *testing.T) {
		t.Setenv("GOOS", "darwin")

		stdout, _, err := executeCmd(t, "link-args")
		require.NoError(t, err)
		assert.Equal(t, "pybuild:link-arg=-undefined\npybuild:link-arg=dynamic_lookup\n", stdout)
	})

	t.Run("linux", func(t *testing.T) {
		t.Setenv("GOOS", "linux")

		stdout, _, err := executeCmd(t, "link-args")
		require.NoError(t, err)
		assert.Empty(t, stdout)
	})
}
