package commands

import (
	"os"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/itl2py/display"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/typegen/driver"
	"github.com/teranos/itl2py/version"
)

// CheckCmd verifies generated files without writing.
var CheckCmd = &cobra.Command{
	Use:   "check <file.itl>...",
	Short: "Check that generated files are up to date",
	Long: `Regenerate in memory and compare with the output directory.

Reports files whose content differs, files that are missing and generated
Python files that the inputs no longer produce. Exits non-zero when
anything is out of date, which makes it usable in CI.

Examples:
  itl2py check basic.itl
  itl2py check --json -o build basic.itl`,
	RunE: runCheck,
}

func init() {
	CheckCmd.Flags().Bool("json", false, "Output the result as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	result, err := driver.New(os.Stdout).Check(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	check := result.Check

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), check); err != nil {
			return err
		}
	} else if check.UpToDate {
		pterm.Success.Printfln("Generated files in %s are up to date", cfg.Output)
	} else {
		backends := make([]string, 0, len(check.Differences))
		for backend := range check.Differences {
			backends = append(backends, backend)
		}
		sort.Strings(backends)
		for _, backend := range backends {
			for _, path := range check.Differences[backend] {
				pterm.Warning.Printfln("%s differs (%s)", path, backend)
			}
		}
		for _, path := range check.Missing {
			pterm.Warning.Printfln("%s is missing", path)
		}
		for _, path := range check.Stale {
			pterm.Warning.Printfln("%s is no longer generated", path)
		}
	}

	if check.OtherGenerator && !display.ShouldOutputJSON(cmd) {
		pterm.Info.Printfln("Output was generated by %s, this is %s", check.GeneratedBy, version.Get().Generator)
	}

	if !check.UpToDate {
		return errors.WithHint(
			errors.Newf("%d generated files are out of date", len(check.Files())),
			"run itl2py generate with the same arguments to update them",
		)
	}
	return nil
}
