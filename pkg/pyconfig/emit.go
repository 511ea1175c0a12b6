package pyconfig

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/MacroPower/pybuild/pkg/errchain"
)

// DirectivePrefix starts every line the pipeline interprets on the build
// tool's output channel. The suffixes are "warning=", "cfg=", and
// "link-arg=".
const DirectivePrefix = "pybuild:"

const (
	cfgDirective     = DirectivePrefix + "cfg="
	linkArgDirective = DirectivePrefix + "link-arg="
)

// EmitCfgFlags writes the conditional-compilation flag directives for the
// configuration to w.
//
// One Py_3_N flag is emitted for every supported minor version up to and
// including the configured version, so downstream code can gate on "N and
// newer". Py_LIMITED_API is emitted when the limited API (abi3) is selected,
// and PyPy when building against PyPy. PyPy has no limited API, so abi3 on
// PyPy downgrades to a warning and version-specific artifacts.
func (c *Config) EmitCfgFlags(w io.Writer) {
	for minor := MinimumSupportedVersion.Minor; minor <= c.Version.Minor; minor++ {
		fmt.Fprintf(w, "%sPy_3_%d\n", cfgDirective, minor)
	}

	if c.Implementation == PyPy {
		fmt.Fprintf(w, "%sPyPy\n", cfgDirective)

		if c.Abi3 {
			errchain.Warning(w, "PyPy does not yet support abi3 so the build artifacts will be version-specific.")
		}

		return
	}

	if c.Abi3 {
		fmt.Fprintf(w, "%sPy_LIMITED_API\n", cfgDirective)
	}
}

// EmitLinkArgs writes the linker-argument directives needed to build a
// Python extension module. On macOS the interpreter symbols must be left
// undefined and resolved at load time; every other target needs nothing, so
// this writes either exactly two lines or none.
func EmitLinkArgs(w io.Writer) {
	if targetOS() != "darwin" {
		return
	}

	fmt.Fprintf(w, "%s-undefined\n", linkArgDirective)
	fmt.Fprintf(w, "%sdynamic_lookup\n", linkArgDirective)
}

// targetOS returns the OS being compiled for, which differs from the host
// when cross-compiling.
func targetOS() string {
	if goos := os.Getenv("GOOS"); goos != "" {
		return goos
	}

	return runtime.GOOS
}
