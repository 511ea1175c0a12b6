package pyconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/MacroPower/pybuild/pkg/errchain"
)

// MinimumSupportedVersion is the oldest Python version the pipeline can
// target.
var MinimumSupportedVersion = Version{Major: 3, Minor: 7}

// Implementation identifies a Python implementation.
type Implementation string

const (
	CPython Implementation = "CPython"
	PyPy    Implementation = "PyPy"
)

// ParseImplementation parses the value of the "implementation" config key.
func ParseImplementation(s string) (Implementation, error) {
	switch Implementation(s) {
	case CPython:
		return CPython, nil
	case PyPy:
		return PyPy, nil
	}

	return "", errchain.Newf("unknown Python implementation %q", s)
}

func (i Implementation) String() string {
	return string(i)
}

// Version is a Python major.minor version.
type Version struct {
	Major int
	Minor int
}

// ParseVersion parses a "major.minor" version string.
func ParseVersion(s string) (Version, error) {
	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, errchain.Newf("invalid Python version %q, expected MAJOR.MINOR", s)
	}

	major, err := strconv.Atoi(majorStr)
	if err != nil {
		return Version{}, errchain.Wrapf(err, "invalid major version in %q", s)
	}

	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return Version{}, errchain.Wrapf(err, "invalid minor version in %q", s)
	}

	return Version{Major: major, Minor: minor}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}

	return v.Minor >= o.Minor
}

// Config is the parsed interpreter configuration.
//
// Values are written once by the loader and treated as immutable afterwards;
// emit helpers only read from it.
type Config struct {
	Implementation Implementation
	Executable     string
	LibName        string
	LibDir         string
	BuildFlags     []string
	Version        Version
	PointerWidth   int
	Shared         bool
	Abi3           bool
}

// Parse reads a configuration from its line-oriented key=value text format.
// Blank lines are ignored; unknown keys, duplicate keys, and malformed
// values are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{Implementation: CPython}
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errchain.Newf("expected key=value pair on line %d, got %q", lineNum, line)
		}

		if seen[key] {
			return nil, errchain.Newf("duplicate config key %q on line %d", key, lineNum)
		}

		seen[key] = true

		if err := cfg.set(key, value); err != nil {
			return nil, errchain.Wrapf(err, "invalid value for %q on line %d", key, lineNum)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errchain.Wrap(err, "failed to read config")
	}

	if !seen["version"] {
		return nil, errchain.New(`missing required config key "version"`)
	}

	return cfg, nil
}

func (c *Config) set(key, value string) error {
	var err error

	switch key {
	case "implementation":
		c.Implementation, err = ParseImplementation(value)
	case "version":
		c.Version, err = ParseVersion(value)
	case "shared":
		c.Shared, err = strconv.ParseBool(value)
	case "abi3":
		c.Abi3, err = strconv.ParseBool(value)
	case "lib_name":
		c.LibName = value
	case "lib_dir":
		c.LibDir = value
	case "executable":
		c.Executable = value
	case "pointer_width":
		c.PointerWidth, err = strconv.Atoi(value)
	case "build_flags":
		if value != "" {
			c.BuildFlags = strings.Split(value, ",")
		}
	default:
		return errchain.Newf("unknown config key %q", key)
	}

	if err != nil {
		return fmt.Errorf("parse %s: %w", key, err)
	}

	return nil
}

// FromPath reads and parses a configuration file.
func FromPath(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errchain.Wrapf(err, "failed to open config file at %s", path)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	cfg, err := Parse(f)
	if err != nil {
		return nil, errchain.Wrapf(err, "failed to parse config file at %s", path)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot work
// with. All problems are reported together.
func (c *Config) Validate() error {
	var merr error

	// The emitted Py_3_N version gates assume a 3.x interpreter.
	switch {
	case c.Version.Major != 3:
		merr = multierror.Append(merr, errchain.Newf(
			"Python %s is not supported, only 3.x versions are", c.Version,
		))
	case !c.Version.AtLeast(MinimumSupportedVersion):
		merr = multierror.Append(merr, errchain.Newf(
			"Python %s is not supported, the minimum is %s", c.Version, MinimumSupportedVersion,
		))
	}

	if c.PointerWidth != 0 && c.PointerWidth != 32 && c.PointerWidth != 64 {
		merr = multierror.Append(merr, errchain.Newf("invalid pointer width %d", c.PointerWidth))
	}

	if merr != nil {
		return fmt.Errorf("invalid interpreter configuration: %w", merr)
	}

	return nil
}

// Write emits the configuration in the same key=value format accepted by
// [Parse].
func (c *Config) Write(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "implementation=%s\n", c.Implementation)
	fmt.Fprintf(&b, "version=%s\n", c.Version)
	fmt.Fprintf(&b, "shared=%t\n", c.Shared)
	fmt.Fprintf(&b, "abi3=%t\n", c.Abi3)

	if c.LibName != "" {
		fmt.Fprintf(&b, "lib_name=%s\n", c.LibName)
	}

	if c.LibDir != "" {
		fmt.Fprintf(&b, "lib_dir=%s\n", c.LibDir)
	}

	if c.Executable != "" {
		fmt.Fprintf(&b, "executable=%s\n", c.Executable)
	}

	if c.PointerWidth != 0 {
		fmt.Fprintf(&b, "pointer_width=%d\n", c.PointerWidth)
	}

	if len(c.BuildFlags) > 0 {
		fmt.Fprintf(&b, "build_flags=%s\n", strings.Join(c.BuildFlags, ","))
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
