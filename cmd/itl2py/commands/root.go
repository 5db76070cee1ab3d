// Package commands implements the itl2py command line.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/logger"
)

// RootCmd generates bindings when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "itl2py [flags] <file.itl>...",
	Short: "Generate pyopendds Python bindings from ITL",
	Long: `itl2py reads ITL type descriptions produced by opendds_idl and generates
the two halves of a pyopendds binding:

  - a Python package with a dataclass per struct and an IntFlag per enum
  - a native C++ extension source converting between the Python objects
    and the OpenDDS types, with topic type registration

Nothing is written unless every input parses and both backends finish.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (ITL2PY_* prefix)
3. Project config (itl2py.toml in the working directory or a parent)
4. Default values

Examples:
  itl2py basic.itl                           # Generate pybasic/ and _pybasic.cpp
  itl2py -o build basic.itl                  # Generate into build/
  itl2py --package-name pyall a.itl b.itl    # Several inputs, one package
  itl2py --dry-run basic.itl                 # Print instead of writing
  itl2py dump --dump-format yaml basic.itl   # Show the parsed module tree
  itl2py check basic.itl                     # Fail if the output is stale`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	RootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	RootCmd.PersistentFlags().String("config", "", "Read settings from this file instead of the project itl2py.toml")
	addGenerationFlags(RootCmd.PersistentFlags())

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(DumpCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(ConfigCmd)
	RootCmd.AddCommand(VersionCmd)
}
