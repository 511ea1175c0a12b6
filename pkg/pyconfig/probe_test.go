package pyconfig_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/pybuild/pkg/pyconfig"
)

func TestFromInterpreter(t *testing.T) {
	t.Parallel()

	t.Run("probes a real interpreter", func(t *testing.T) {
		t.Parallel()

		exe, err := exec.LookPath("python3")
		if err != nil {
			t.Skip("no python3 on PATH")
		}

		cfg, err := pyconfig.FromInterpreter(exe)
		require.NoError(t, err)

		assert.Equal(t, 3, cfg.Version.Major)
		assert.NotEmpty(t, cfg.Executable)
		assert.Contains(t, []int{32, 64}, cfg.PointerWidth)
	})

	t.Run("missing interpreter", func(t *testing.T) {
		t.Parallel()

		_, err := pyconfig.FromInterpreter("definitely-not-python")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run Python interpreter")
	})
}
