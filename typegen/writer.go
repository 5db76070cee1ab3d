package typegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/teranos/itl2py/errors"
)

// Commit writes every file of out below dir. It is only called with a
// complete Output, so a failed run leaves dir untouched.
func Commit(out *Output, dir string) ([]string, error) {
	written := make([]string, 0, len(out.Files))
	for _, path := range out.Paths() {
		f, _ := out.File(path)
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, errors.Wrapf(err, "failed to create directory for %s", f.Path)
		}
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", f.Path)
		}
		written = append(written, target)
	}
	return written, nil
}

// Print writes the would-be output of a dry run: each file under a banner
// naming its path.
func Print(w io.Writer, out *Output) error {
	for i, path := range out.Paths() {
		f, _ := out.File(path)
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "=== %s (%s) ===\n", f.Path, f.Backend); err != nil {
			return err
		}
		if _, err := w.Write(f.Content); err != nil {
			return err
		}
	}
	return nil
}
