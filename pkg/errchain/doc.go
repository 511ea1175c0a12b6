// Package errchain provides the chainable error type used by build-support
// code.
//
// An [Error] carries a human-readable message and an optional wrapped cause.
// The plain error string is only the top-level message; [Error.Report] renders
// the full causal chain for build logs, so that the root cause of a failed
// configuration load can be diagnosed without a debugger.
package errchain
