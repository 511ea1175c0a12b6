package errchain

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// warningDirective is the directive prefix understood by the pybuild pipeline
// for diagnostic messages.
const warningDirective = "pybuild:warning="

// Error is a build error with a message and an optional wrapped cause.
//
// The cause, if present, is stored type-erased behind the error interface and
// is reachable via [errors.Unwrap], so [errors.Is] and [errors.As] work
// through the chain. Values are immutable after construction.
type Error struct {
	cause error
	msg   string
}

var _ error = (*Error)(nil)

// New creates an [Error] with no cause.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Newf creates an [Error] with no cause from a format string.
func Newf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an [Error] with msg as the visible message and cause as the
// wrapped source. A nil cause is a programming error and panics; a success
// value must never be wrapped.
func Wrap(cause error, msg string) *Error {
	if cause == nil {
		panic("errchain: Wrap called with nil cause")
	}

	return &Error{msg: msg, cause: cause}
}

// Wrapf is [Wrap] with a format string.
func Wrapf(cause error, format string, args ...any) *Error {
	return Wrap(cause, fmt.Sprintf(format, args...))
}

// Context wraps err with a lazily-computed message. It returns nil when err
// is nil, and msgFn is only invoked on the error path, so the message is
// never built for successful operations.
func Context(err error, msgFn func() string) error {
	if err == nil {
		return nil
	}

	return Wrap(err, msgFn())
}

// Ensure returns nil when cond is true, and otherwise the same error that
// [Newf] would build. It lets callers collapse condition-check-and-return
// into a single statement:
//
//	if err := errchain.Ensure(cfg.Shared, "%s requires a shared libpython", target); err != nil {
//		return err
//	}
func Ensure(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}

	return Newf(format, args...)
}

// Error returns only the top-level message.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	return e.msg
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// Report renders the full causal chain. The first line is the top-level
// message; if a cause exists, a "caused by:" section follows with one
// zero-indexed line per cause, ordered from most proximate to root. The walk
// always terminates: each error owns at most one cause, so chains are finite.
func (e *Error) Report() string {
	return Report(e)
}

// Report renders err the way [Error.Report] does for any error: err's own
// message is the head line, and whatever [errors.Unwrap] yields from err
// itself forms the "caused by:" section. Starting the walk at err rather
// than at the nearest [*Error] keeps outer wrapping and aggregated messages
// in the head line.
func Report(err error) string {
	var b strings.Builder

	b.WriteString(err.Error())

	cause := errors.Unwrap(err)
	if cause != nil {
		b.WriteString("\ncaused by:\n")

		for i := 0; cause != nil; i++ {
			fmt.Fprintf(&b, "  - %d: %v\n", i, cause)
			cause = errors.Unwrap(cause)
		}
	}

	return b.String()
}

// Warning writes a single warning directive line for msg to w. The message
// is emitted verbatim; no formatting is supported.
func Warning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s%s\n", warningDirective, msg)
}
