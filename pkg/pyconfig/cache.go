package pyconfig

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MacroPower/pybuild/pkg/errchain"
)

const (
	// ConfigFileEnvVar names a config file that overrides every other source.
	ConfigFileEnvVar = "PYBUILD_CONFIG_FILE"

	// OutDirEnvVar is set by the pipeline to the build output directory,
	// where the cross-compile config is generated.
	OutDirEnvVar = "PYBUILD_OUT_DIR"

	// CrossConfigFileName is the fixed name of the generated cross-compile
	// config inside the build output directory.
	CrossConfigFileName = "pybuild-cross-config.txt"
)

// crossEnvVars indicate cross-compilation. Only their presence matters, not
// their values.
var crossEnvVars = []string{
	"PYBUILD_CROSS",
	"PYBUILD_CROSS_LIB_DIR",
	"PYBUILD_CROSS_PYTHON_VERSION",
	"PYBUILD_CROSS_PYTHON_IMPLEMENTATION",
}

// hostConfig is the host interpreter configuration discovered when the
// pipeline was built, used when nothing overrides it.
//
//go:embed pybuild-host-config.txt
var hostConfig string

// Cache is a write-once holder for a loaded [Config]. The load function runs
// at most once across all callers of [Cache.Get]; racing callers block until
// the first load completes and then observe its result, including a load
// error.
type Cache struct {
	load func() (*Config, error)
	cfg  *Config
	err  error
	once sync.Once
}

// NewCache creates a [Cache] around load.
func NewCache(load func() (*Config, error)) *Cache {
	return &Cache{load: load}
}

// Get returns the cached configuration, loading it on first use.
func (c *Cache) Get() (*Config, error) {
	c.once.Do(func() {
		c.cfg, c.err = c.load()
	})

	return c.cfg, c.err
}

// CrossCompiling reports whether any cross-compilation environment variable
// is set.
func CrossCompiling() bool {
	for _, v := range crossEnvVars {
		if _, ok := os.LookupEnv(v); ok {
			return true
		}
	}

	return false
}

// CrossConfigPath returns the fixed path of the generated cross-compile
// config.
func CrossConfigPath() string {
	return filepath.Join(os.Getenv(OutDirEnvVar), CrossConfigFileName)
}

// Load resolves and parses the configuration from the first matching source:
// the [ConfigFileEnvVar] override, the cross-compile config when
// [CrossCompiling], or the embedded host default. It performs no caching;
// use [Get] for the process-wide value.
func Load() (*Config, error) {
	if path := os.Getenv(ConfigFileEnvVar); path != "" {
		cfg, err := FromPath(path)
		if err != nil {
			return nil, errchain.Wrapf(err, "failed to load config from %s=%s", ConfigFileEnvVar, path)
		}

		return cfg, nil
	}

	if CrossCompiling() {
		cfg, err := FromPath(CrossConfigPath())
		if err != nil {
			return nil, errchain.Wrap(err, "failed to load cross-compile config")
		}

		return cfg, nil
	}

	cfg, err := Parse(strings.NewReader(hostConfig))
	if err != nil {
		return nil, errchain.Wrap(err, "failed to parse embedded host config")
	}

	return cfg, nil
}

var defaultCache = NewCache(Load)

// Get returns the process-wide interpreter configuration, loading it exactly
// once. Every caller observes the same value.
func Get() (*Config, error) {
	return defaultCache.Get()
}

// MustGet is [Get] for build scripts that cannot proceed without a valid
// configuration: on load failure it prints the full error report to stderr
// and exits non-zero.
func MustGet() *Config {
	cfg, err := Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, errchain.Report(err))
		os.Exit(1)
	}

	return cfg
}
