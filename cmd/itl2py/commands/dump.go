package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/itl2py/typegen/driver"
)

// DumpCmd prints the assembled module tree.
var DumpCmd = &cobra.Command{
	Use:   "dump <file.itl>...",
	Short: "Print the module tree parsed from ITL",
	Long: `Parse and assemble the inputs, then print the module tree without
generating anything. Same as --just-dump-ast.

Examples:
  itl2py dump basic.itl
  itl2py dump --dump-format json basic.itl | jq '.submodules[].types[].name'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		cfg.DumpAST = true
		cfg.JustDumpAST = true
		_, err = driver.New(os.Stdout).Run(cmd.Context(), cfg)
		return err
	},
}
