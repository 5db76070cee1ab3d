package ast

import "github.com/teranos/itl2py/errors"

// Visitor reacts to every named non-primitive type variant. Backends
// implement it directly so that a new variant breaks their build.
type Visitor interface {
	VisitStruct(*StructType)
	VisitEnum(*EnumType)
	VisitArray(*ArrayType)
	VisitSequence(*SequenceType)
}

// ModuleVisitor is implemented by visitors that handle submodule descent
// themselves. Walk calls VisitModule instead of recursing.
type ModuleVisitor interface {
	VisitModule(*Module)
}

// NopVisitor ignores every variant. Embed it in partial visitors.
type NopVisitor struct{}

func (NopVisitor) VisitStruct(*StructType)     {}
func (NopVisitor) VisitEnum(*EnumType)         {}
func (NopVisitor) VisitArray(*ArrayType)       {}
func (NopVisitor) VisitSequence(*SequenceType) {}

// Walk visits the module's own types in insertion order, then its
// submodules in insertion order. Primitive aliases are skipped.
func Walk(m *Module, v Visitor) {
	for _, t := range m.Types() {
		Accept(t, v)
	}
	mv, takesOver := v.(ModuleVisitor)
	for _, sub := range m.Submodules() {
		if takesOver {
			mv.VisitModule(sub)
			continue
		}
		Walk(sub, v)
	}
}

// Accept dispatches a single type to v.
func Accept(t Type, v Visitor) {
	switch t := t.(type) {
	case *StructType:
		v.VisitStruct(t)
	case *EnumType:
		v.VisitEnum(t)
	case *ArrayType:
		v.VisitArray(t)
	case *SequenceType:
		v.VisitSequence(t)
	}
}

// Matcher handles each variant and produces an R.
type Matcher[R any] interface {
	Primitive(*PrimitiveType) R
	Struct(*StructType) R
	Enum(*EnumType) R
	Array(*ArrayType) R
	Sequence(*SequenceType) R
}

// Match dispatches t to the matching method of m.
func Match[R any](t Type, m Matcher[R]) R {
	switch t := t.(type) {
	case *PrimitiveType:
		return m.Primitive(t)
	case *StructType:
		return m.Struct(t)
	case *EnumType:
		return m.Enum(t)
	case *ArrayType:
		return m.Array(t)
	case *SequenceType:
		return m.Sequence(t)
	}
	panic(errors.AssertionFailedf("unknown type variant %T", t))
}
