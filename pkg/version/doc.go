// Package version exposes the build metadata compiled into the pybuild
// binary.
//
// Version is the semantic release version, overridden via ldflags on release
// builds. Revision is the VCS revision recorded by the Go toolchain, so
// directive output seen in build logs can be traced back to an exact build.
package version
