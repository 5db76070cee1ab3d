package typegen

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// Header is the first line of every generated Python file.
const Header = "# Code generated by itl2py from ITL. DO NOT EDIT."

// File is one generated artifact. Path is relative to the output directory.
type File struct {
	Path    string
	Content []byte
	// Backend names the generator that produced the file.
	Backend string
}

// DegradedField is a struct field a backend emitted as an explicit
// unimplemented marker instead of a working conversion.
type DegradedField struct {
	Backend string `toml:"backend" json:"backend" yaml:"backend"`
	// Type is the scoped name of the owning struct, e.g. "::Test::Reading".
	Type   string `toml:"type" json:"type" yaml:"type"`
	Field  string `toml:"field" json:"field" yaml:"field"`
	Reason string `toml:"reason" json:"reason" yaml:"reason"`
}

// Output holds everything one generation run produces. Nothing is written
// until the whole Output is complete.
type Output struct {
	Files      []File
	Degraded   []DegradedField
	TopicTypes []string
}

// Add appends a file.
func (o *Output) Add(f File) {
	o.Files = append(o.Files, f)
}

// Degrade records a degraded field.
func (o *Output) Degrade(d DegradedField) {
	o.Degraded = append(o.Degraded, d)
}

// Merge appends the contents of other.
func (o *Output) Merge(other *Output) {
	if other == nil {
		return
	}
	o.Files = append(o.Files, other.Files...)
	o.Degraded = append(o.Degraded, other.Degraded...)
	for _, topic := range other.TopicTypes {
		if !contains(o.TopicTypes, topic) {
			o.TopicTypes = append(o.TopicTypes, topic)
		}
	}
}

// File looks a file up by path.
func (o *Output) File(path string) (File, bool) {
	for _, f := range o.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}

// Paths returns the file paths, sorted.
func (o *Output) Paths() []string {
	paths := make([]string, 0, len(o.Files))
	for _, f := range o.Files {
		paths = append(paths, f.Path)
	}
	sort.Strings(paths)
	return paths
}

// DegradedBy returns the degraded fields reported by one backend.
func (o *Output) DegradedBy(backend string) []DegradedField {
	var out []DegradedField
	for _, d := range o.Degraded {
		if d.Backend == backend {
			out = append(out, d)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Options are the settings both backends share.
type Options struct {
	// PackageName is the generated Python package.
	PackageName string
	// NativePackageName is the native extension module.
	NativePackageName string
	// DefaultEncoding is the Python codec narrow strings are decoded with.
	DefaultEncoding string
	// IDLNames are the IDL stems whose TypeSupportImpl.h headers are included.
	IDLNames []string
	// MinOpenDDSVersion adds a compile time version guard when set.
	MinOpenDDSVersion *semver.Version
}
