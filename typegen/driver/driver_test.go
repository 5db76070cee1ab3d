package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/config"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/typegen"
)

const plainReading = `{"types": [{"kind": "alias", "name": "IDL:Test/Reading:1.0", "type": {"kind": "record", "fields": [
	{"name": "value", "type": {"kind": "int", "bits": 32}},
	{"name": "where", "type": {"kind": "string"}}
]}}]}`

const topicReading = `{"types": [{"kind": "alias", "name": "IDL:Test/Reading:1.0", "note": {"is_dcps_data_type": true},
	"type": {"kind": "record", "fields": [
		{"name": "value", "type": {"kind": "int", "bits": 32}},
		{"name": "where", "type": {"kind": "string"}}
	]}}]}`

const unknownReference = `{"types": [{"kind": "alias", "name": "IDL:Test/Reading:1.0", "type": {"kind": "record", "fields": [
	{"name": "where", "type": "IDL:Test/Nowhere:1.0"}
]}}]}`

const boundedSequence = `{"types": [{"kind": "alias", "name": "IDL:Test/Reading:1.0", "note": {"is_dcps_data_type": true},
	"type": {"kind": "record", "fields": [
		{"name": "samples", "type": {"kind": "sequence", "capacity": 5, "type": {"kind": "int", "bits": 8, "unsigned": true}}}
	]}}]}`

// setup writes doc as test.itl and returns a finalized config writing to
// its own output directory.
func setup(t *testing.T, doc string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "test.itl")
	require.NoError(t, os.WriteFile(input, []byte(doc), 0o644))

	cfg := &config.Config{
		ITLFiles: []string{input},
		Output:   filepath.Join(dir, "out"),
	}
	require.NoError(t, cfg.Finalize())
	return cfg
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunPlainRecord(t *testing.T) {
	cfg := setup(t, plainReading)
	result, err := New(&bytes.Buffer{}).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Written, 3)

	py := read(t, filepath.Join(cfg.Output, "pytest", "Test", "__init__.py"))
	assert.Contains(t, py, "class Reading:\n    value: int = 0\n    where: str = ''\n")

	native := read(t, cfg.NativeSourcePath())
	assert.Equal(t, 2, strings.Count(native, "itl2py_set_attr(py, "))
	assert.Equal(t, 2, strings.Count(native, "itl2py_get_attr(py, \""))
	assert.NotContains(t, native, "TopicType<")
	assert.Empty(t, result.Output.TopicTypes)
}

func TestRunTopicRecord(t *testing.T) {
	cfg := setup(t, topicReading)
	result, err := New(&bytes.Buffer{}).Run(context.Background(), cfg)
	require.NoError(t, err)

	root := result.Root
	mod, ok := root.Submodule("Test")
	require.True(t, ok)
	types := mod.Types()
	require.Len(t, types, 1)
	reading, ok := types[0].(*ast.StructType)
	require.True(t, ok)
	assert.True(t, reading.IsTopicType)

	py := read(t, filepath.Join(cfg.Output, "pytest", "Test", "__init__.py"))
	assert.Contains(t, py, "_pyopendds_typesupport_packge_name = '_pytest'")

	native := read(t, cfg.NativeSourcePath())
	assert.Equal(t, 1, strings.Count(native, "::init();"))
	assert.Equal(t, []string{"::Test::Reading"}, result.Output.TopicTypes)
}

func TestRunUnknownReferenceWritesNothing(t *testing.T) {
	cfg := setup(t, unknownReference)
	_, err := New(&bytes.Buffer{}).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownTypeReference))
	assert.True(t, errors.IsSchemaError(err))

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestRunBoundedSequence(t *testing.T) {
	cfg := setup(t, boundedSequence)
	result, err := New(&bytes.Buffer{}).Run(context.Background(), cfg)
	require.NoError(t, err)

	var seq *ast.SequenceType
	for _, typ := range result.Root.Table().Named() {
		if s, ok := typ.(*ast.StructType); ok {
			f, found := s.Field("samples")
			if found {
				seq, _ = result.Root.Resolve(f.Type).(*ast.SequenceType)
			}
		}
	}
	require.NotNil(t, seq)
	require.NotNil(t, seq.MaxCount)
	assert.Equal(t, 5, *seq.MaxCount)

	native := read(t, cfg.NativeSourcePath())
	assert.Contains(t, native, "i0 < cpp.samples.length()")
	assert.NotContains(t, native, "< 5")
}

func TestRunDryRun(t *testing.T) {
	cfg := setup(t, plainReading)
	cfg.DryRun = true

	var stdout bytes.Buffer
	result, err := New(&stdout).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Written)
	assert.Contains(t, stdout.String(), "=== _pytest.cpp (cpp) ===")
	assert.Contains(t, stdout.String(), "=== pytest/Test/__init__.py (python) ===")

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunJustDumpAST(t *testing.T) {
	cfg := setup(t, plainReading)
	cfg.JustDumpAST = true
	cfg.DumpFormat = config.DumpJSON
	require.NoError(t, cfg.Finalize())

	var stdout bytes.Buffer
	result, err := New(&stdout).Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Nil(t, result.Output)
	assert.Contains(t, stdout.String(), `"name": "::Test::Reading"`)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunManifest(t *testing.T) {
	cfg := setup(t, topicReading)
	cfg.Manifest = true

	result, err := New(&bytes.Buffer{}).Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, cfg.ManifestPath(), result.ManifestPath)

	m, err := typegen.ReadManifest(result.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, result.RunID, m.RunID)
	assert.Equal(t, "pytest", m.PackageName)
	assert.Equal(t, []string{"::Test::Reading"}, m.TopicTypes)
	assert.Equal(t, result.Output.Paths(), m.Files)
}

func TestCheck(t *testing.T) {
	cfg := setup(t, plainReading)
	d := New(&bytes.Buffer{})

	result, err := d.Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, result.Check.UpToDate)
	assert.Len(t, result.Check.Missing, 3)

	_, err = d.Run(context.Background(), cfg)
	require.NoError(t, err)

	result, err = d.Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Check.UpToDate)
}

func TestCheckReportsGenerator(t *testing.T) {
	cfg := setup(t, plainReading)
	cfg.Manifest = true
	d := New(&bytes.Buffer{})

	_, err := d.Run(context.Background(), cfg)
	require.NoError(t, err)

	result, err := d.Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "itl2py/dev", result.Check.GeneratedBy)
	assert.False(t, result.Check.OtherGenerator)

	m, err := typegen.ReadManifest(cfg.ManifestPath())
	require.NoError(t, err)
	m.Generator = "itl2py/0.1.0+abcdef0"
	require.NoError(t, typegen.WriteManifest(cfg.ManifestPath(), m))

	result, err = d.Check(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, result.Check.OtherGenerator)
	assert.True(t, result.Check.UpToDate)
}

func TestComputeCanceled(t *testing.T) {
	cfg := setup(t, plainReading)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&bytes.Buffer{}).Compute(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
}
