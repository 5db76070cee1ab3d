package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/itl2py/errors"
)

func TestFinalizeDefaults(t *testing.T) {
	c := &Config{ITLFiles: []string{"idl/basic.itl"}}
	require.NoError(t, c.Finalize())

	assert.Equal(t, "pybasic", c.PackageName)
	assert.Equal(t, "_pybasic", c.NativePackageName)
	assert.Equal(t, ".", c.Output)
	assert.Equal(t, "utf_8", c.DefaultEncoding)
	assert.Equal(t, DumpTree, c.DumpFormat)
	assert.Equal(t, []string{"basic"}, c.IDLNames)
	assert.Nil(t, c.OpenDDSVersion())
	assert.Equal(t, filepath.Join(".", "pybasic"), c.PackageDir())
	assert.Equal(t, filepath.Join(".", "_pybasic.cpp"), c.NativeSourcePath())
}

func TestFinalizeKeepsExplicitNames(t *testing.T) {
	c := &Config{
		ITLFiles:          []string{"a.itl", "b.itl"},
		PackageName:       "pyall",
		NativePackageName: "_native",
		IDLNames:          []string{"combined"},
		JustDumpAST:       true,
		MinOpenDDSVersion: "3.20.0",
	}
	require.NoError(t, c.Finalize())

	assert.Equal(t, "pyall", c.PackageName)
	assert.Equal(t, "_native", c.NativePackageName)
	assert.Equal(t, []string{"combined"}, c.IDLNames)
	assert.True(t, c.DumpAST)
	require.NotNil(t, c.OpenDDSVersion())
	assert.Equal(t, uint64(20), c.OpenDDSVersion().Minor())
}

func TestFinalizeUsesPythonCodecName(t *testing.T) {
	for given, want := range map[string]string{
		"UTF-8":       "utf_8",
		"latin1":      "latin_1",
		"Mac-Roman":   "mac_roman",
		"ISO-8859-15": "iso8859_15",
	} {
		c := &Config{ITLFiles: []string{"a.itl"}, DefaultEncoding: given}
		require.NoError(t, c.Finalize(), given)
		assert.Equal(t, want, c.DefaultEncoding, given)
	}
}

func TestFinalizeErrors(t *testing.T) {
	tests := []struct {
		name string
		c    Config
	}{
		{"no inputs", Config{}},
		{"multiple inputs without package", Config{ITLFiles: []string{"a.itl", "b.itl"}}},
		{"bad encoding", Config{ITLFiles: []string{"a.itl"}, DefaultEncoding: "utf_99"}},
		{"bad dump format", Config{ITLFiles: []string{"a.itl"}, DumpFormat: "xml"}},
		{"bad version", Config{ITLFiles: []string{"a.itl"}, MinOpenDDSVersion: "three"}},
		{"keyword package", Config{ITLFiles: []string{"a.itl"}, PackageName: "class"}},
		{"invalid package", Config{ITLFiles: []string{"a.itl"}, PackageName: "my-pkg"}},
		{"invalid native", Config{ITLFiles: []string{"a.itl"}, NativePackageName: "1native"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.c
			err := c.Finalize()
			require.Error(t, err)
			assert.True(t, errors.IsConfigError(err), "got %v", err)
		})
	}
}

func TestMultipleInputsHint(t *testing.T) {
	c := &Config{ITLFiles: []string{"a.itl", "b.itl"}}
	err := c.Finalize()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--package-name")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
itl_files = ["basic.itl"]
output = "out"
package_name = "pybasic"
default_encoding = "latin_1"
manifest = true
`), 0644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"basic.itl"}, c.ITLFiles)
	assert.Equal(t, "out", c.Output)
	assert.Equal(t, "latin_1", c.DefaultEncoding)
	assert.True(t, c.Manifest)
	assert.Equal(t, DumpTree, c.DumpFormat, "defaults fill unset keys")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsConfigError(err))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("ITL2PY_DEFAULT_ENCODING", "ascii")
	t.Setenv("ITL2PY_DRY_RUN", "true")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	SetDefaults(v)

	c, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "ascii", c.DefaultEncoding)
	assert.True(t, c.DryRun)
}

func TestFindConfigFrom(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	assert.Equal(t, "", findConfigFrom(nested))

	path := filepath.Join(root, FileName)
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	assert.Equal(t, path, findConfigFrom(nested))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	starter := Starter([]string{"basic.itl"})
	require.NoError(t, WriteFile(path, starter, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, "utf_8", decoded["default_encoding"])
	assert.NotContains(t, decoded, "package_name")

	err = WriteFile(path, starter, false)
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
	require.NoError(t, WriteFile(path, starter, true))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"basic.itl"}, loaded.ITLFiles)
}
