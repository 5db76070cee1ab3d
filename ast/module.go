package ast

import "github.com/teranos/itl2py/errors"

// Module groups the types sharing a name prefix. The root module has an
// empty name. Modules are built by Assemble and not changed afterwards.
type Module struct {
	name   Name
	parent *Module
	table  *Table

	submodules map[string]*Module
	subOrder   []string

	types     map[string]NodeID
	typeOrder []string
}

func newModule(parent *Module, segment string, table *Table) *Module {
	m := &Module{
		parent:     parent,
		table:      table,
		submodules: make(map[string]*Module),
		types:      make(map[string]NodeID),
	}
	if parent != nil {
		m.name = NewName(append(append([]string(nil), parent.name.Parts...), segment)...)
	}
	return m
}

// Assemble builds the module tree from the named entries of table.
func Assemble(table *Table) (*Module, error) {
	root := newModule(nil, "", table)
	for _, t := range table.Named() {
		h := t.header()
		if h.Name.IsZero() {
			return nil, errors.AssertionFailedf("type node %d has an empty qualified name", h.ID)
		}
		module := root
		for _, segment := range h.ParentName().Parts {
			module = module.child(segment)
		}
		key := h.Name.ITLName()
		if _, exists := module.types[key]; !exists {
			module.types[key] = h.ID
			module.typeOrder = append(module.typeOrder, key)
		}
	}
	return root, nil
}

func (m *Module) child(segment string) *Module {
	if sub, ok := m.submodules[segment]; ok {
		return sub
	}
	sub := newModule(m, segment, m.table)
	m.submodules[segment] = sub
	m.subOrder = append(m.subOrder, segment)
	return sub
}

// Name is the module's qualified name.
func (m *Module) Name() Name { return m.name }

// LocalName is the last segment of the module name.
func (m *Module) LocalName() string { return m.name.Local() }

func (m *Module) IsRoot() bool { return m.parent == nil }

func (m *Module) Parent() *Module { return m.parent }

// Table is the arena the module's types live in.
func (m *Module) Table() *Table { return m.table }

// Resolve returns the type for a node id of this module's table.
func (m *Module) Resolve(id NodeID) Type { return m.table.Node(id) }

// Types returns the module's own types in insertion order.
func (m *Module) Types() []Type {
	out := make([]Type, 0, len(m.typeOrder))
	for _, key := range m.typeOrder {
		out = append(out, m.table.Node(m.types[key]))
	}
	return out
}

// Submodules returns the direct submodules in insertion order.
func (m *Module) Submodules() []*Module {
	out := make([]*Module, 0, len(m.subOrder))
	for _, segment := range m.subOrder {
		out = append(out, m.submodules[segment])
	}
	return out
}

// Submodule returns the direct submodule named segment.
func (m *Module) Submodule(segment string) (*Module, bool) {
	sub, ok := m.submodules[segment]
	return sub, ok
}

// Owns reports whether the type with the given name is defined directly in m.
func (m *Module) Owns(name Name) bool {
	_, ok := m.types[name.ITLName()]
	return ok
}

// Find walks the module path of name from m.
func (m *Module) Find(name Name) (*Module, bool) {
	module := m
	for _, segment := range name.Parts {
		sub, ok := module.submodules[segment]
		if !ok {
			return nil, false
		}
		module = sub
	}
	return module, true
}

// Empty reports a module with neither types nor submodules.
func (m *Module) Empty() bool {
	return len(m.typeOrder) == 0 && len(m.subOrder) == 0
}
