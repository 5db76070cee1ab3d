package typegen

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/version"
)

// Manifest records what one generation run produced.
type Manifest struct {
	// RunID correlates the manifest with the run's log lines.
	RunID       string    `toml:"run_id"`
	GeneratedAt time.Time `toml:"generated_at"`
	// Generator names the itl2py build, see version.Info.Generator.
	Generator string `toml:"generator"`

	PackageName       string   `toml:"package_name"`
	NativePackageName string   `toml:"native_package_name"`
	Inputs            []string `toml:"inputs"`

	Files      []string        `toml:"files"`
	TopicTypes []string        `toml:"topic_types"`
	Degraded   []DegradedField `toml:"degraded"`
}

// NewManifest summarizes out.
func NewManifest(runID string, opts Options, inputs []string, out *Output) *Manifest {
	return &Manifest{
		RunID:             runID,
		GeneratedAt:       time.Now().UTC().Truncate(time.Second),
		Generator:         version.Get().Generator,
		PackageName:       opts.PackageName,
		NativePackageName: opts.NativePackageName,
		Inputs:            inputs,
		Files:             out.Paths(),
		TopicTypes:        out.TopicTypes,
		Degraded:          out.Degraded,
	}
}

// Encode renders the manifest as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, errors.Wrap(err, "failed to encode manifest")
	}
	return buf.Bytes(), nil
}

// WriteManifest writes m to path.
func WriteManifest(path string, m *Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", path)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	return &m, nil
}
