package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MacroPower/pybuild/pkg/errchain"
	"github.com/MacroPower/pybuild/pkg/pyconfig"
)

const (
	cfgsDesc = `This command emits one conditional-compilation flag directive per feature of
the configured Python interpreter: a Py_3_N version gate for every supported
minor version up to the configured one, Py_LIMITED_API for abi3 builds, and
PyPy when building against PyPy.
`
	cfgsExample = `  # Emit flags for the resolved interpreter configuration
  pybuild cfgs

  # Emit flags for an explicit config file
  PYBUILD_CONFIG_FILE=./pybuild-config.txt pybuild cfgs
`
)

// NewCfgsCmd returns the cfgs command.
func NewCfgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "cfgs",
		Short:        "Emit conditional-compilation flag directives",
		Long:         cfgsDesc,
		Example:      cfgsExample,
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg, err := pyconfig.Get()
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			slog.Debug("emitting cfg flags",
				slog.String("implementation", cfg.Implementation.String()),
				slog.String("version", cfg.Version.String()),
			)

			cfg.EmitCfgFlags(cc.OutOrStdout())

			return nil
		},
	}
}

// NewLinkArgsCmd returns the link-args command.
func NewLinkArgsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "link-args",
		Short:        "Emit linker-argument directives for extension modules",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			pyconfig.EmitLinkArgs(cc.OutOrStdout())

			return nil
		},
	}
}

// NewDumpCmd returns the dump command.
func NewDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "dump",
		Short:        "Print the resolved interpreter configuration",
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg, err := pyconfig.Get()
			if err != nil {
				return err
			}

			return cfg.Write(cc.OutOrStdout())
		},
	}
}

// NewProbeCmd returns the probe command.
func NewProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "probe",
		Short:        "Discover the configuration of a Python interpreter",
		SilenceUsage: true,
	}

	cmd.Flags().StringP("interpreter", "i", "python3", "Python interpreter to probe")

	cmd.RunE = func(cc *cobra.Command, _ []string) error {
		exe, err := cc.Flags().GetString("interpreter")
		if err != nil {
			return err
		}

		cfg, err := pyconfig.FromInterpreter(exe)
		if err != nil {
			return errchain.Wrapf(err, "failed to probe %s", exe)
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		return cfg.Write(cc.OutOrStdout())
	}

	return cmd
}
