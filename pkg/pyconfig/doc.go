// Package pyconfig loads and exposes the Python interpreter configuration
// used by the pybuild pipeline.
//
// The configuration is discovered at build time and stored in a line-oriented
// key=value text format. [Get] returns the process-wide configuration, loaded
// exactly once from the first matching source: an explicit file named by the
// PYBUILD_CONFIG_FILE environment variable, the generated cross-compile
// config when cross-compilation variables are set, or the embedded host
// default. Emit helpers translate the configuration into directive lines for
// the host build tool.
package pyconfig
