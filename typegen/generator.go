// Package typegen holds what the code generation backends share: the
// in-memory Output of a run, the writer that commits it, the manifest and
// the up-to-date check.
package typegen

import "github.com/teranos/itl2py/ast"

// Generator is one code generation backend. Generate walks the module tree
// and returns the files it would write; it never touches the filesystem and
// never mutates the tree.
type Generator interface {
	// Language names the backend, e.g. "python" or "cpp".
	Language() string
	Generate(root *ast.Module) (*Output, error)
}
