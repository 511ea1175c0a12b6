package pyconfig

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/MacroPower/pybuild/pkg/errchain"
)

// probeScript prints the interpreter's configuration in the same key=value
// format accepted by [Parse].
const probeScript = `
import platform
import struct
import sys
import sysconfig

print("implementation=%s" % platform.python_implementation())
print("version=%d.%d" % sys.version_info[:2])
print("shared=%s" % str(bool(sysconfig.get_config_var("Py_ENABLE_SHARED"))).lower())
ldversion = sysconfig.get_config_var("LDVERSION") or sysconfig.get_config_var("py_version_short")
print("lib_name=python%s" % ldversion)
libdir = sysconfig.get_config_var("LIBDIR")
if libdir:
    print("lib_dir=%s" % libdir)
print("executable=%s" % sys.executable)
print("pointer_width=%d" % (struct.calcsize("P") * 8))
`

// FromInterpreter discovers the configuration of a live interpreter by
// running executable with a probe script and parsing its output.
func FromInterpreter(executable string) (*Config, error) {
	cmd := exec.Command(executable, "-c", probeScript)

	var outb, errb bytes.Buffer

	cmd.Stdout = &outb
	cmd.Stderr = &errb

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(errb.String()); msg != "" {
			err = errchain.Wrap(err, msg)
		}

		return nil, errchain.Wrapf(err, "failed to run Python interpreter %s", executable)
	}

	cfg, err := Parse(&outb)
	if err != nil {
		return nil, errchain.Wrapf(err, "failed to parse output of Python interpreter %s", executable)
	}

	return cfg, nil
}
