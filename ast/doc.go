// Package ast is the type model shared by the ITL parser and the code
// generation backends.
//
// All types of a run are allocated in one Table and refer to each other by
// NodeID. Assemble groups the named entries into a Module tree, and Walk
// visits that tree in a fixed order: a module's own types first, then its
// submodules, both in insertion order.
//
//	table := ast.NewTable()
//	// ... itl.Parser fills the table ...
//	root, err := ast.Assemble(table)
//	ast.Walk(root, backend)
package ast
