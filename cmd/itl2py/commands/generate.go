package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/itl2py/config"
	"github.com/teranos/itl2py/logger"
	"github.com/teranos/itl2py/typegen/driver"
)

// GenerateCmd is the explicit form of running itl2py with files.
var GenerateCmd = &cobra.Command{
	Use:   "generate <file.itl>...",
	Short: "Generate the Python package and native source",
	Long: `Parse every ITL file into one type table and generate:

  <output>/<package>/...         Python package, one __init__.py per module
  <output>/<native-package>.cpp  Native extension source

Fields a backend cannot convert are generated as stubs and listed with -v.

Examples:
  itl2py generate basic.itl
  itl2py generate --manifest -o build basic.itl`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !cmd.HasParent() && config.FindProjectConfig() == "" {
		return cmd.Help()
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := driver.New(os.Stdout).Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if cfg.JustDumpAST || cfg.DryRun {
		return nil
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if logger.ShouldOutput(verbosity, logger.OutputResults) {
		for _, path := range result.Written {
			pterm.Success.Printfln("Generated %s", path)
		}
		if result.ManifestPath != "" {
			pterm.Info.Printfln("Manifest %s", result.ManifestPath)
		}
	}
	if len(result.Output.Degraded) > 0 {
		if logger.ShouldOutput(verbosity, logger.OutputFieldGaps) {
			for _, gap := range result.Output.Degraded {
				pterm.Warning.Printfln("%s.%s not converted by %s backend: %s",
					gap.Type, gap.Field, gap.Backend, gap.Reason)
			}
		} else if logger.ShouldOutput(verbosity, logger.OutputUserStatus) {
			pterm.Warning.Printfln("%d fields generated as stubs (-v to list)", len(result.Output.Degraded))
		}
	}
	return nil
}
