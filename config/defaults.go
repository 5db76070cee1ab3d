package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/itl2py/codec"
)

// Default values for all configuration options.
const (
	DefaultOutput     = "."
	DefaultDumpFormat = DumpTree
	FileName          = "itl2py.toml"
	EnvPrefix         = "ITL2PY"
	ManifestFileName  = "itl2py-manifest.toml"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("itl_files", []string{})
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("package_name", "")
	v.SetDefault("native_package_name", "")
	v.SetDefault("default_encoding", codec.Default)

	v.SetDefault("dry_run", false)
	v.SetDefault("dump_ast", false)
	v.SetDefault("just_dump_ast", false)
	v.SetDefault("dump_format", DefaultDumpFormat)
	v.SetDefault("manifest", false)

	v.SetDefault("min_opendds_version", "")
	v.SetDefault("idl_names", []string{})
}
