package typegen

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/itl2py/errors"
)

// CheckResult holds the result of comparing a fresh Output with what is on
// disk.
type CheckResult struct {
	UpToDate bool `json:"up_to_date"`
	// Differences maps a backend to the files whose content differs.
	Differences map[string][]string `json:"differences,omitempty"`
	// Missing are generated files that do not exist on disk.
	Missing []string `json:"missing,omitempty"`
	// Stale are files on disk carrying the generated header that the
	// current run no longer produces.
	Stale []string `json:"stale,omitempty"`
	// GeneratedBy is the generator recorded in the output's manifest, if
	// there is one. OtherGenerator is set when a different build wrote it.
	GeneratedBy    string `json:"generated_by,omitempty"`
	OtherGenerator bool   `json:"other_generator,omitempty"`
}

// Compare checks out against the files below dir. packageDir, relative to
// dir, is scanned for stale generated Python files.
func Compare(out *Output, dir, packageDir string) (*CheckResult, error) {
	result := &CheckResult{Differences: make(map[string][]string)}

	for _, path := range out.Paths() {
		f, _ := out.File(path)
		existing, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		switch {
		case os.IsNotExist(err):
			result.Missing = append(result.Missing, f.Path)
		case err != nil:
			return nil, errors.Wrapf(err, "failed to read %s", f.Path)
		case !bytes.Equal(existing, f.Content):
			result.Differences[f.Backend] = append(result.Differences[f.Backend], f.Path)
		}
	}

	stale, err := staleFiles(out, dir, packageDir)
	if err != nil {
		return nil, err
	}
	result.Stale = stale

	result.UpToDate = len(result.Differences) == 0 && len(result.Missing) == 0 && len(result.Stale) == 0
	return result, nil
}

func staleFiles(out *Output, dir, packageDir string) ([]string, error) {
	root := filepath.Join(dir, filepath.FromSlash(packageDir))
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var stale []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".py") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := out.File(rel); ok {
			return nil
		}
		generated, err := hasHeader(path)
		if err != nil {
			return err
		}
		if generated {
			stale = append(stale, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", root)
	}
	sort.Strings(stale)
	return stale, nil
}

// shouldSkipDir returns true for directories that never hold generated code.
func shouldSkipDir(name string) bool {
	switch name {
	case "__pycache__", "build", "dist", ".git":
		return true
	}
	return strings.HasSuffix(name, ".egg-info")
}

func hasHeader(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}
	return bytes.HasPrefix(data, []byte(Header)), nil
}

// Files lists every out-of-date path, sorted.
func (r *CheckResult) Files() []string {
	var files []string
	for _, diffs := range r.Differences {
		files = append(files, diffs...)
	}
	files = append(files, r.Missing...)
	files = append(files, r.Stale...)
	sort.Strings(files)
	return files
}
