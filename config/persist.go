package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/itl2py/errors"
)

// Marshal renders c as itl2py.toml content.
func Marshal(c *Config) ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config")
	}
	return data, nil
}

// WriteFile writes c to path. An existing file is only replaced when
// overwrite is set.
func WriteFile(path string, c *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.WithHint(
				errors.Newf("%s already exists", path),
				"pass --force to overwrite it",
			)
		}
	}

	data, err := Marshal(c)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// Starter returns the configuration `config init` writes.
func Starter(itlFiles []string) *Config {
	return &Config{
		ITLFiles:        itlFiles,
		Output:          DefaultOutput,
		DefaultEncoding: "utf_8",
		DumpFormat:      DefaultDumpFormat,
	}
}
