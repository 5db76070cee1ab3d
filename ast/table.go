package ast

// Table is the arena all types of a run live in. Nodes are addressed by
// NodeID; named nodes are additionally indexed by canonical ITL name in
// insertion order.
type Table struct {
	nodes  []Type
	byName map[string]NodeID
	order  []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byName: make(map[string]NodeID)}
}

// Add allocates t in the arena and returns its id. It does not index the name.
func (tb *Table) Add(t Type) NodeID {
	id := NodeID(len(tb.nodes))
	t.header().ID = id
	tb.nodes = append(tb.nodes, t)
	return id
}

// Node returns the type stored under id, or nil.
func (tb *Table) Node(id NodeID) Type {
	if id < 0 || int(id) >= len(tb.nodes) {
		return nil
	}
	return tb.nodes[id]
}

// Lookup finds a named type by canonical ITL name.
func (tb *Table) Lookup(itlName string) (Type, bool) {
	id, ok := tb.byName[itlName]
	if !ok {
		return nil, false
	}
	return tb.nodes[id], true
}

// Contains reports whether itlName is indexed.
func (tb *Table) Contains(itlName string) bool {
	_, ok := tb.byName[itlName]
	return ok
}

// Insert indexes t under its current name unless the name is already
// present; the first definition wins. Unallocated nodes are added to the
// arena first. It returns false when t was not indexed.
func (tb *Table) Insert(t Type) bool {
	h := t.header()
	if !h.Named() {
		return false
	}
	key := h.Name.ITLName()
	if _, exists := tb.byName[key]; exists {
		return false
	}
	if tb.Node(h.ID) != t {
		tb.Add(t)
	}
	tb.byName[key] = h.ID
	tb.order = append(tb.order, key)
	return true
}

// Names returns the indexed names in insertion order.
func (tb *Table) Names() []string {
	return append([]string(nil), tb.order...)
}

// Named returns the indexed types in insertion order. An entry whose node
// was renamed by an alias after indexing is still reported under its
// original key.
func (tb *Table) Named() []Type {
	out := make([]Type, 0, len(tb.order))
	for _, key := range tb.order {
		out = append(out, tb.nodes[tb.byName[key]])
	}
	return out
}

// First returns the earliest indexed type.
func (tb *Table) First() (Type, bool) {
	if len(tb.order) == 0 {
		return nil, false
	}
	return tb.nodes[tb.byName[tb.order[0]]], true
}

// Len is the number of indexed names.
func (tb *Table) Len() int { return len(tb.order) }

// Size is the number of nodes in the arena.
func (tb *Table) Size() int { return len(tb.nodes) }
