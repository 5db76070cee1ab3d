package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/itl2py/codec"
	"github.com/teranos/itl2py/config"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/logger"
)

// flagKeys maps generation flags to config keys.
// nolint:gochecknoglobals
var flagKeys = map[string]string{
	"output":              "output",
	"package-name":        "package_name",
	"native-package-name": "native_package_name",
	"default-encoding":    "default_encoding",
	"dry-run":             "dry_run",
	"dump-ast":            "dump_ast",
	"just-dump-ast":       "just_dump_ast",
	"dump-format":         "dump_format",
	"manifest":            "manifest",
	"min-opendds-version": "min_opendds_version",
	"idl-name":            "idl_names",
}

func addGenerationFlags(fs *pflag.FlagSet) {
	fs.StringP("output", "o", config.DefaultOutput, "Directory to write the package and native source to")
	fs.String("package-name", "", "Python package name (default: py<stem> for a single input)")
	fs.String("native-package-name", "", "Native extension module name (default: _<package-name>)")
	fs.String("default-encoding", codec.Default, "Python codec for narrow strings")
	fs.Bool("dry-run", false, "Print the generated files instead of writing them")
	fs.Bool("dump-ast", false, "Print the module tree before generating")
	fs.Bool("just-dump-ast", false, "Print the module tree and stop")
	fs.String("dump-format", config.DefaultDumpFormat, "Module tree format: tree, json, yaml")
	fs.Bool("manifest", false, "Write "+config.ManifestFileName+" next to the output")
	fs.String("min-opendds-version", "", "Refuse to compile the native source against older OpenDDS")
	fs.StringSlice("idl-name", nil, "IDL file stem whose TypeSupportImpl.h to include (repeatable, default: ITL stems)")
}

// loadConfig builds the effective configuration for cmd. Positional
// arguments replace itl_files.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	v := config.New()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to read config file %s", path), errors.ErrInvalidConfig)
		}
	} else if used := v.ConfigFileUsed(); used != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "failed to read config file %s", used), errors.ErrInvalidConfig)
		}
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.ITLFiles = args
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	logger.Debugw("effective configuration",
		"itl_files", cfg.ITLFiles,
		logger.FieldOutput, cfg.Output,
		"package_name", cfg.PackageName,
		"native_package_name", cfg.NativePackageName,
		logger.FieldEncoding, cfg.DefaultEncoding)
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", name)
		}
	}
	return nil
}
