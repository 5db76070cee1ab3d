package ast

import "fmt"

// NodeID addresses a node in a Table.
type NodeID int

// InvalidNode is the NodeID of a node that has not been added to a table.
const InvalidNode NodeID = -1

// Node is the header every type carries.
type Node struct {
	ID          NodeID
	Name        Name
	IsTopicType bool
}

func (n *Node) header() *Node { return n }

// Named reports whether the node has a qualified name.
func (n *Node) Named() bool { return !n.Name.IsZero() }

// LocalName returns the last name segment, or "" for anonymous nodes.
func (n *Node) LocalName() string { return n.Name.Local() }

// ParentName returns the name of the module that owns the node.
func (n *Node) ParentName() Name { return n.Name.Parent() }

// SetName re-stamps the node's name.
func (n *Node) SetName(name Name) { n.Name = name }

// Type is the closed set of type variants: *PrimitiveType, *StructType,
// *EnumType, *ArrayType and *SequenceType.
type Type interface {
	header() *Node
}

// HeaderOf returns the common node header of t.
func HeaderOf(t Type) *Node {
	return t.header()
}

// PrimitiveKind enumerates the scalar and string kinds.
type PrimitiveKind int

const (
	KindBool PrimitiveKind = iota + 1
	KindByte
	KindU8
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindU128
	KindI128
	KindF32
	KindF64
	KindF128
	KindC8
	KindC16
	KindS8
	KindS16
)

// Traits are the static properties of a primitive kind.
type Traits struct {
	ElementSize   int
	IsUnsignedInt bool
	IsSignedInt   bool
	IsFloat       bool
	IsText        bool
	IsScalar      bool
	IsBool        bool
	IsRaw         bool
}

type kindInfo struct {
	name   string
	traits Traits
}

// nolint:gochecknoglobals
var kindTable = []struct {
	kind PrimitiveKind
	info kindInfo
}{
	{KindBool, kindInfo{"bool", Traits{ElementSize: 8, IsBool: true, IsScalar: true}}},
	{KindByte, kindInfo{"byte", Traits{ElementSize: 8, IsRaw: true, IsScalar: true}}},
	{KindU8, kindInfo{"u8", Traits{ElementSize: 8, IsUnsignedInt: true, IsScalar: true}}},
	{KindI8, kindInfo{"i8", Traits{ElementSize: 8, IsSignedInt: true, IsScalar: true}}},
	{KindU16, kindInfo{"u16", Traits{ElementSize: 16, IsUnsignedInt: true, IsScalar: true}}},
	{KindI16, kindInfo{"i16", Traits{ElementSize: 16, IsSignedInt: true, IsScalar: true}}},
	{KindU32, kindInfo{"u32", Traits{ElementSize: 32, IsUnsignedInt: true, IsScalar: true}}},
	{KindI32, kindInfo{"i32", Traits{ElementSize: 32, IsSignedInt: true, IsScalar: true}}},
	{KindU64, kindInfo{"u64", Traits{ElementSize: 64, IsUnsignedInt: true, IsScalar: true}}},
	{KindI64, kindInfo{"i64", Traits{ElementSize: 64, IsSignedInt: true, IsScalar: true}}},
	{KindU128, kindInfo{"u128", Traits{ElementSize: 128, IsUnsignedInt: true, IsScalar: true}}},
	{KindI128, kindInfo{"i128", Traits{ElementSize: 128, IsSignedInt: true, IsScalar: true}}},
	{KindF32, kindInfo{"f32", Traits{ElementSize: 32, IsFloat: true, IsScalar: true}}},
	{KindF64, kindInfo{"f64", Traits{ElementSize: 64, IsFloat: true, IsScalar: true}}},
	{KindF128, kindInfo{"f128", Traits{ElementSize: 128, IsFloat: true, IsScalar: true}}},
	{KindC8, kindInfo{"c8", Traits{ElementSize: 8, IsText: true, IsScalar: true}}},
	{KindC16, kindInfo{"c16", Traits{ElementSize: 16, IsText: true, IsScalar: true}}},
	{KindS8, kindInfo{"s8", Traits{ElementSize: 8, IsText: true}}},
	{KindS16, kindInfo{"s16", Traits{ElementSize: 16, IsText: true}}},
}

func lookupKind(k PrimitiveKind) (kindInfo, bool) {
	for _, entry := range kindTable {
		if entry.kind == k {
			return entry.info, true
		}
	}
	return kindInfo{}, false
}

// Traits returns the static traits of the kind.
func (k PrimitiveKind) Traits() Traits {
	info, _ := lookupKind(k)
	return info.traits
}

func (k PrimitiveKind) String() string {
	if info, ok := lookupKind(k); ok {
		return info.name
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(k))
}

// KindForTraits finds the kind whose traits are exactly t.
func KindForTraits(t Traits) (PrimitiveKind, bool) {
	for _, entry := range kindTable {
		if entry.info.traits == t {
			return entry.kind, true
		}
	}
	return 0, false
}

// PrimitiveType is a scalar or string type.
type PrimitiveType struct {
	Node
	Kind PrimitiveKind
	// ElementCountLimit bounds a string's length; nil means unbounded.
	ElementCountLimit *int
}

func (p *PrimitiveType) IsInt() bool {
	t := p.Kind.Traits()
	return t.IsSignedInt || t.IsUnsignedInt
}

func (p *PrimitiveType) IsFloat() bool { return p.Kind.Traits().IsFloat }

func (p *PrimitiveType) IsBool() bool { return p.Kind == KindBool }

func (p *PrimitiveType) IsByte() bool { return p.Kind == KindByte }

// IsChar reports a narrow or wide character.
func (p *PrimitiveType) IsChar() bool {
	t := p.Kind.Traits()
	return t.IsText && t.IsScalar
}

// IsString reports a narrow or wide string.
func (p *PrimitiveType) IsString() bool {
	t := p.Kind.Traits()
	return t.IsText && !t.IsScalar
}

// Field is one struct member. Type refers into the owning Table.
type Field struct {
	Name     string
	Type     NodeID
	Optional bool
}

// StructType is a record with ordered fields.
type StructType struct {
	Node
	Fields []Field
}

// AddField appends a field, replacing an earlier field of the same name in place.
func (s *StructType) AddField(name string, typ NodeID, optional bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			s.Fields[i] = Field{Name: name, Type: typ, Optional: optional}
			return
		}
	}
	s.Fields = append(s.Fields, Field{Name: name, Type: typ, Optional: optional})
}

// Field looks a field up by name.
func (s *StructType) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// EnumMember is one named enumerator.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumType is an ordered set of named integer values.
type EnumType struct {
	Node
	// Size is the declared width in bits.
	Size    int
	Members []EnumMember
}

// AddMember appends a member; the first member added is the default.
func (e *EnumType) AddMember(name string, value int64) {
	for i := range e.Members {
		if e.Members[i].Name == name {
			e.Members[i].Value = value
			return
		}
	}
	e.Members = append(e.Members, EnumMember{Name: name, Value: value})
}

// DefaultMember returns the first member's name.
func (e *EnumType) DefaultMember() string {
	if len(e.Members) == 0 {
		return ""
	}
	return e.Members[0].Name
}

// Value returns the value of the named member.
func (e *EnumType) Value(name string) (int64, bool) {
	for _, m := range e.Members {
		if m.Name == name {
			return m.Value, true
		}
	}
	return 0, false
}

// ArrayType is a fixed-size, possibly multidimensional array.
type ArrayType struct {
	Node
	Base       NodeID
	Dimensions []int
}

// Len is the total element count.
func (a *ArrayType) Len() int {
	total := 1
	for _, d := range a.Dimensions {
		total *= d
	}
	return total
}

// SequenceType is a variable-length list.
type SequenceType struct {
	Node
	Base NodeID
	// MaxCount is the bound; nil means unbounded.
	MaxCount *int
}

// Bounded reports whether the sequence has a maximum length.
func (s *SequenceType) Bounded() bool { return s.MaxCount != nil }
