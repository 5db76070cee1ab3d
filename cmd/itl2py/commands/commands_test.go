package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/itl2py/errors"
)

func newTestCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", "", "")
	addGenerationFlags(cmd.Flags())
	return cmd
}

func TestLoadConfigFlags(t *testing.T) {
	out := t.TempDir()
	cmd := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("output", out))
	require.NoError(t, cmd.Flags().Set("idl-name", "basic"))
	require.NoError(t, cmd.Flags().Set("idl-name", "extra"))
	require.NoError(t, cmd.Flags().Set("dump-format", "yaml"))

	cfg, err := loadConfig(cmd, []string{"basic.itl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"basic.itl"}, cfg.ITLFiles)
	assert.Equal(t, out, cfg.Output)
	assert.Equal(t, "pybasic", cfg.PackageName)
	assert.Equal(t, "_pybasic", cfg.NativePackageName)
	assert.Equal(t, []string{"basic", "extra"}, cfg.IDLNames)
	assert.Equal(t, "yaml", cfg.DumpFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
itl_files = ["a.itl", "b.itl"]
package_name = "pyall"
manifest = true
`), 0o644))

	cmd := newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("config", path))

	cfg, err := loadConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.itl", "b.itl"}, cfg.ITLFiles)
	assert.Equal(t, "pyall", cfg.PackageName)
	assert.Equal(t, "_pyall", cfg.NativePackageName)
	assert.True(t, cfg.Manifest)

	// Positional files replace the configured ones; the flag still wins.
	cmd = newTestCmd(t)
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("package-name", "pyother"))
	cfg, err = loadConfig(cmd, []string{"c.itl"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.itl"}, cfg.ITLFiles)
	assert.Equal(t, "pyother", cfg.PackageName)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		args  []string
	}{
		{"missing config file", map[string]string{"config": filepath.Join(t.TempDir(), "nope.toml")}, []string{"basic.itl"}},
		{"several files without package name", nil, []string{"a.itl", "b.itl"}},
		{"bad encoding", map[string]string{"default-encoding": "klingon"}, []string{"basic.itl"}},
		{"bad dump format", map[string]string{"dump-format": "xml"}, []string{"basic.itl"}},
		{"bad version", map[string]string{"min-opendds-version": "three"}, []string{"basic.itl"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestCmd(t)
			for name, value := range tt.flags {
				require.NoError(t, cmd.Flags().Set(name, value))
			}
			_, err := loadConfig(cmd, tt.args)
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), "expected a config error, got %v", err)
		})
	}
}

func TestWatchOptions(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"custom", map[string]string{"debounce": "1s", "max-runs": "5"}, false},
		{"zero debounce", map[string]string{"debounce": "0s"}, false},
		{"zero max runs", map[string]string{"max-runs": "0"}, true},
		{"negative max runs", map[string]string{"max-runs": "-1"}, true},
		{"negative debounce", map[string]string{"debounce": "-1s"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			addWatchFlags(cmd.Flags())
			for name, value := range tt.flags {
				require.NoError(t, cmd.Flags().Set(name, value))
			}
			opts, err := watchOptions(cmd)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigError(err), "expected a config error, got %v", err)
				assert.NotEmpty(t, errors.GetAllHints(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, opts, 2)
		})
	}
}

func TestPrintErrorShowsHints(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, errors.WithHint(errors.NewConfigError("no ITL files given"), "pass one or more .itl files"))
	assert.Contains(t, buf.String(), "no ITL files given")
	assert.Contains(t, buf.String(), "pass one or more .itl files")
}
