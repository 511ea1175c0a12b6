package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/MacroPower/pybuild/internal/cli"
	"github.com/MacroPower/pybuild/pkg/errchain"
	"github.com/MacroPower/pybuild/pkg/log"
)

func init() {
	log.SetLogFormat("text")
	log.SetLogLevel("warn")
}

const (
	cmdName = "pybuild"

	shortDesc = "Python build-configuration support for binding pipelines."
	longDesc  = `Python build-configuration support for language-binding pipelines.

pybuild resolves the Python interpreter configuration discovered at build time
(from an override file, a generated cross-compile config, or the embedded host
default) and emits directive lines that instruct the host build tool to set
conditional-compilation flags and linker arguments.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(errchain.Report(err), "\n"))
		os.Exit(1)
	}
}
