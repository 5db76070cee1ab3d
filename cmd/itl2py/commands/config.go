package commands

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/itl2py/config"
	"github.com/teranos/itl2py/errors"
)

// ConfigCmd groups configuration helpers.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create itl2py configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show [file.itl]...",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, itl2py.toml, ITL2PY_*
environment variables and flags have been merged and derived names filled in.

Examples:
  itl2py config show basic.itl
  ITL2PY_OUTPUT=build itl2py config show --format yaml basic.itl`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [file.itl]...",
	Short: "Write a starter itl2py.toml",
	Long: `Write itl2py.toml to the working directory, listing the given ITL files.

Examples:
  itl2py config init basic.itl
  itl2py config init --force a.itl b.itl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := config.WriteFile(config.FileName, config.Starter(args), force); err != nil {
			return err
		}
		pterm.Success.Printfln("Wrote %s", config.FileName)
		return nil
	},
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing itl2py.toml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	var data []byte
	switch format {
	case "toml":
		data, err = config.Marshal(cfg)
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return errors.WithHint(
			errors.Newf("unknown format %q", format),
			"use toml, json or yaml",
		)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to render config as %s", format)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
