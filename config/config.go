// Package config loads and validates the generator settings.
//
// Settings come from, lowest precedence first: built-in defaults, an
// itl2py.toml found in the working directory or one of its parents,
// ITL2PY_* environment variables and command line flags.
package config

import (
	"github.com/Masterminds/semver/v3"
)

// Dump formats accepted by dump_format.
const (
	DumpTree = "tree"
	DumpJSON = "json"
	DumpYAML = "yaml"
)

// Config is the full generator configuration.
type Config struct {
	// ITLFiles are the input files, parsed in order.
	ITLFiles []string `mapstructure:"itl_files" toml:"itl_files" json:"itl_files" yaml:"itl_files"`
	// Output is the directory the Python package and native source go to.
	Output string `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	// PackageName is the generated Python package.
	PackageName string `mapstructure:"package_name" toml:"package_name,omitempty" json:"package_name,omitempty" yaml:"package_name,omitempty"`
	// NativePackageName is the generated native extension module.
	NativePackageName string `mapstructure:"native_package_name" toml:"native_package_name,omitempty" json:"native_package_name,omitempty" yaml:"native_package_name,omitempty"`
	// DefaultEncoding is the Python codec used for narrow strings.
	DefaultEncoding string `mapstructure:"default_encoding" toml:"default_encoding" json:"default_encoding" yaml:"default_encoding"`

	DryRun      bool   `mapstructure:"dry_run" toml:"dry_run" json:"dry_run" yaml:"dry_run"`
	DumpAST     bool   `mapstructure:"dump_ast" toml:"dump_ast" json:"dump_ast" yaml:"dump_ast"`
	JustDumpAST bool   `mapstructure:"just_dump_ast" toml:"just_dump_ast" json:"just_dump_ast" yaml:"just_dump_ast"`
	DumpFormat  string `mapstructure:"dump_format" toml:"dump_format" json:"dump_format" yaml:"dump_format"`
	Manifest    bool   `mapstructure:"manifest" toml:"manifest" json:"manifest" yaml:"manifest"`

	// MinOpenDDSVersion adds a compile time guard to the native source.
	MinOpenDDSVersion string `mapstructure:"min_opendds_version" toml:"min_opendds_version,omitempty" json:"min_opendds_version,omitempty" yaml:"min_opendds_version,omitempty"`
	// IDLNames are the IDL file stems whose TypeSupportImpl.h headers the
	// native source includes. Defaults to the ITL file stems.
	IDLNames []string `mapstructure:"idl_names" toml:"idl_names,omitempty" json:"idl_names,omitempty" yaml:"idl_names,omitempty"`

	openDDSVersion *semver.Version
}

// OpenDDSVersion returns the parsed minimum OpenDDS version, or nil.
// It is set by Finalize.
func (c *Config) OpenDDSVersion() *semver.Version {
	return c.openDDSVersion
}
