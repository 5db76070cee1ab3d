package config

import (
	"path/filepath"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/itl2py/codec"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/itl"
	"github.com/teranos/itl2py/typegen/util"
)

// Finalize fills the derived settings and validates the rest. It runs
// before any generation work; every failure is an ErrInvalidConfig.
func (c *Config) Finalize() error {
	if len(c.ITLFiles) == 0 {
		return errors.WithHint(
			errors.NewConfigError("no ITL files given"),
			"pass one or more .itl files, e.g. itl2py basic.itl",
		)
	}

	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.PackageName == "" {
		if len(c.ITLFiles) > 1 {
			return errors.WithHint(
				errors.NewConfigError("a package name is required when there are multiple ITL files"),
				"pass --package-name or set package_name in itl2py.toml",
			)
		}
		c.PackageName = "py" + itl.Stem(c.ITLFiles[0])
	}
	if !util.IsPythonIdentifier(c.PackageName) || util.IsPythonKeyword(c.PackageName) {
		return errors.NewConfigError("package name %q is not a valid Python identifier", c.PackageName)
	}

	if c.NativePackageName == "" {
		c.NativePackageName = "_" + c.PackageName
	}
	if !util.IsPythonIdentifier(c.NativePackageName) {
		return errors.NewConfigError("native package name %q is not a valid identifier", c.NativePackageName)
	}

	if c.DefaultEncoding == "" {
		c.DefaultEncoding = codec.Default
	}
	enc, err := codec.Lookup(c.DefaultEncoding)
	if err != nil {
		return errors.Wrap(err, "default_encoding")
	}
	c.DefaultEncoding = enc.Python

	if c.DumpFormat == "" {
		c.DumpFormat = DefaultDumpFormat
	}
	switch c.DumpFormat {
	case DumpTree, DumpJSON, DumpYAML:
	default:
		return errors.WithHint(
			errors.NewConfigError("unknown dump format %q", c.DumpFormat),
			"use tree, json or yaml",
		)
	}
	if c.JustDumpAST {
		c.DumpAST = true
	}

	c.openDDSVersion = nil
	if c.MinOpenDDSVersion != "" {
		version, err := semver.NewVersion(c.MinOpenDDSVersion)
		if err != nil {
			return errors.Mark(
				errors.Wrapf(err, "min_opendds_version %q", c.MinOpenDDSVersion),
				errors.ErrInvalidConfig,
			)
		}
		c.openDDSVersion = version
	}

	if len(c.IDLNames) == 0 {
		c.IDLNames = make([]string, 0, len(c.ITLFiles))
		for _, path := range c.ITLFiles {
			c.IDLNames = append(c.IDLNames, itl.Stem(path))
		}
	}

	return nil
}

// ManifestPath is where the generation manifest is written.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Output, ManifestFileName)
}

// PackageDir is the root directory of the generated Python package.
func (c *Config) PackageDir() string {
	return filepath.Join(c.Output, c.PackageName)
}

// NativeSourcePath is the generated native source file.
func (c *Config) NativeSourcePath() string {
	return filepath.Join(c.Output, c.NativePackageName+".cpp")
}
