package errchain_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/pybuild/pkg/errchain"
)

func TestErrorDisplay(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *errchain.Error
		want string
	}{
		"plain message": {
			err:  errchain.New("something went wrong"),
			want: "something went wrong",
		},
		"formatted message": {
			err:  errchain.Newf("failed after %d attempts", 3),
			want: "failed after 3 attempts",
		},
		"wrapped error shows only the top message": {
			err:  errchain.Wrap(errors.New("root cause"), "operation failed"),
			want: "operation failed",
		},
		"empty message": {
			err:  errchain.New(""),
			want: "",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestErrorReport(t *testing.T) {
	t.Parallel()

	t.Run("no cause has no caused by section", func(t *testing.T) {
		t.Parallel()

		err := errchain.New("lonely failure")

		assert.Equal(t, "lonely failure", err.Report())
	})

	t.Run("single cause", func(t *testing.T) {
		t.Parallel()

		root := errors.New("file is empty")
		err := errchain.Wrap(root, "failed to parse config")

		report := err.Report()

		lines := strings.Split(report, "\n")
		require.GreaterOrEqual(t, len(lines), 3)
		assert.Equal(t, "failed to parse config", lines[0])
		assert.Equal(t, "caused by:", lines[1])
		assert.Equal(t, "  - 0: file is empty", lines[2])
	})

	t.Run("chain of depth n yields n indexed lines", func(t *testing.T) {
		t.Parallel()

		const depth = 5

		err := error(errors.New("cause 0"))
		for i := 1; i < depth; i++ {
			err = errchain.Wrapf(err, "cause %d", i)
		}

		top := errchain.Wrap(err, "top")
		report := top.Report()

		assert.True(t, strings.HasPrefix(report, "top\ncaused by:\n"))

		for i := range depth {
			assert.Contains(t, report, fmt.Sprintf("  - %d: cause %d\n", i, depth-1-i))
		}

		causedBy := strings.SplitN(report, "caused by:\n", 2)[1]
		assert.Len(t, strings.Split(strings.TrimRight(causedBy, "\n"), "\n"), depth)
	})

	t.Run("report of arbitrary error falls back to its message", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "plain", errchain.Report(errors.New("plain")))
	})

	t.Run("fmt wrapping keeps the outer message as the head line", func(t *testing.T) {
		t.Parallel()

		inner := errchain.Wrap(errors.New("root"), "middle")
		err := fmt.Errorf("outer: %w", inner)

		report := errchain.Report(err)

		lines := strings.Split(report, "\n")
		require.GreaterOrEqual(t, len(lines), 4)
		assert.Equal(t, "outer: middle", lines[0])
		assert.Equal(t, "caused by:", lines[1])
		assert.Equal(t, "  - 0: middle", lines[2])
		assert.Equal(t, "  - 1: root", lines[3])
	})

	t.Run("aggregated errors survive in full", func(t *testing.T) {
		t.Parallel()

		var merr error
		merr = multierror.Append(merr, errchain.New("first problem"))
		merr = multierror.Append(merr, errchain.New("second problem"))

		err := fmt.Errorf("invalid interpreter configuration: %w", merr)

		report := errchain.Report(err)

		// The head line is the full aggregated message, not a single member.
		head := strings.SplitN(report, "caused by:", 2)[0]
		assert.Contains(t, head, "invalid interpreter configuration")
		assert.Contains(t, head, "first problem")
		assert.Contains(t, head, "second problem")
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("cause is reachable via errors helpers", func(t *testing.T) {
		t.Parallel()

		root := errors.New("root cause")
		err := errchain.Wrap(root, "context")

		require.ErrorIs(t, err, root)
		assert.Equal(t, root, errors.Unwrap(err))
	})

	t.Run("nil cause panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			_ = errchain.Wrap(nil, "should never happen")
		})
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("nil error passes through without building the message", func(t *testing.T) {
		t.Parallel()

		called := false

		err := errchain.Context(nil, func() string {
			called = true

			return "expensive message"
		})

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("non-nil error gets the lazy message", func(t *testing.T) {
		t.Parallel()

		root := errors.New("boom")
		err := errchain.Context(root, func() string { return "while probing interpreter" })

		require.Error(t, err)
		assert.Equal(t, "while probing interpreter", err.Error())
		assert.ErrorIs(t, err, root)
	})
}

func TestEnsure(t *testing.T) {
	t.Parallel()

	t.Run("true condition has no effect", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, errchain.Ensure(true, "unused %s", "message"))
	})

	t.Run("false condition matches a direct bail", func(t *testing.T) {
		t.Parallel()

		got := errchain.Ensure(false, "bad value %d", 42)
		want := errchain.Newf("bad value %d", 42)

		require.Error(t, got)
		assert.Equal(t, want.Error(), got.Error())
		assert.Equal(t, want.Report(), errchain.Report(got))
	})
}

func TestWarning(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	errchain.Warning(buf, "config file is stale")

	assert.Equal(t, "pybuild:warning=config file is stale\n", buf.String())
}
