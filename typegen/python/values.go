package python

import (
	"fmt"
	"strings"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/typegen/util"
)

// pyValue is how a field type renders in a dataclass.
type pyValue struct {
	// annotation is the field's type annotation.
	annotation string
	// fieldDefault follows "=" in the field declaration.
	fieldDefault string
	// value is an expression producing a fresh default, used for elements.
	value string
	// baseType is what a typedef's _base_type attribute holds.
	baseType string
	// localRef is the same-module class fieldDefault names eagerly.
	// lazyDefault replaces fieldDefault when an earlier member of the
	// class body has taken that name.
	localRef    string
	lazyDefault string

	ok     bool
	reason string
}

func unimplemented(format string, args ...interface{}) pyValue {
	return pyValue{reason: fmt.Sprintf(format, args...)}
}

func (v pyValue) baseTypeOrObject() string {
	if !v.ok {
		return "object"
	}
	return v.baseType
}

func (m *moduleGenerator) valueOf(id ast.NodeID) pyValue {
	t := m.module.Resolve(id)
	if t == nil {
		return unimplemented("type node %d is missing", id)
	}
	return ast.Match[pyValue](t, valueMatcher{m: m})
}

type valueMatcher struct {
	m *moduleGenerator
}

func literal(annotation, lit string) pyValue {
	return pyValue{annotation: annotation, fieldDefault: lit, value: lit, baseType: annotation, ok: true}
}

func (vm valueMatcher) Primitive(p *ast.PrimitiveType) pyValue {
	switch {
	case p.IsBool():
		return literal("bool", "False")
	case p.IsInt(), p.IsByte():
		return literal("int", "0")
	case p.IsFloat():
		return literal("float", "0.0")
	case p.IsChar():
		return literal("str", `'\x00'`)
	case p.IsString():
		return literal("str", "''")
	}
	return unimplemented("primitive kind %s has no Python mapping", p.Kind)
}

// reference resolves how this module refers to a named type: by local name
// when the type is defined here, otherwise through the package.
func (m *moduleGenerator) reference(n *ast.Node) (ref string, local bool, ok bool) {
	if !n.Named() {
		return "", false, false
	}
	if m.module.Owns(n.Name) {
		return util.PythonIdent(n.LocalName()), true, true
	}
	owner, found := m.root.Find(n.ParentName())
	if !found || !owner.Owns(n.Name) {
		return "", false, false
	}
	parts := []string{m.gen.opts.PackageName}
	for _, segment := range n.Name.Parts {
		parts = append(parts, util.PythonIdent(segment))
	}
	m.usesPackage = true
	return strings.Join(parts, "."), false, true
}

func (vm valueMatcher) Struct(s *ast.StructType) pyValue {
	ref, local, ok := vm.m.reference(&s.Node)
	if !ok {
		if !s.Named() {
			return unimplemented("anonymous struct")
		}
		return unimplemented("struct %s is not defined in any module", s.Name.Scoped())
	}
	v := pyValue{annotation: ref, value: ref + "()", baseType: ref, ok: true}
	if local {
		v.fieldDefault = fmt.Sprintf("%s(default_factory=%s)", FieldHelper, ref)
		v.localRef = ref
		v.lazyDefault = fmt.Sprintf("%s(default_factory=lambda: %s())", FieldHelper, ref)
	} else {
		v.fieldDefault = fmt.Sprintf("%s(default_factory=lambda: %s())", FieldHelper, ref)
		v.baseType = util.PythonStringLiteral(ref)
	}
	return v
}

func (vm valueMatcher) Enum(e *ast.EnumType) pyValue {
	ref, local, ok := vm.m.reference(&e.Node)
	if !ok {
		if !e.Named() {
			return unimplemented("anonymous enum")
		}
		return unimplemented("enum %s is not defined in any module", e.Name.Scoped())
	}
	member := ref + "." + util.PythonIdent(e.DefaultMember())
	v := pyValue{annotation: ref, value: member, baseType: ref, ok: true}
	if local {
		v.fieldDefault = member
		v.localRef = ref
		v.lazyDefault = fmt.Sprintf("%s(default_factory=lambda: %s)", FieldHelper, member)
	} else {
		v.fieldDefault = fmt.Sprintf("%s(default_factory=lambda: %s)", FieldHelper, member)
		v.baseType = util.PythonStringLiteral(ref)
	}
	return v
}

func (vm valueMatcher) Sequence(s *ast.SequenceType) pyValue {
	elem := vm.m.valueOf(s.Base)
	if !elem.ok {
		return unimplemented("sequence element: %s", elem.reason)
	}
	return pyValue{
		annotation:   fmt.Sprintf("list[%s]", elem.annotation),
		fieldDefault: fmt.Sprintf("%s(default_factory=%s.list)", FieldHelper, BuiltinsAlias),
		value:        "[]",
		baseType:     "list",
		ok:           true,
	}
}

func (vm valueMatcher) Array(a *ast.ArrayType) pyValue {
	elem := vm.m.valueOf(a.Base)
	if !elem.ok {
		return unimplemented("array element: %s", elem.reason)
	}
	if len(a.Dimensions) == 0 {
		return unimplemented("array without dimensions")
	}
	annotation := elem.annotation
	expr := elem.value
	for i := len(a.Dimensions) - 1; i >= 0; i-- {
		annotation = fmt.Sprintf("list[%s]", annotation)
		expr = fmt.Sprintf("[%s for _ in range(%d)]", expr, a.Dimensions[i])
	}
	return pyValue{
		annotation:   annotation,
		fieldDefault: fmt.Sprintf("%s(default_factory=lambda: %s)", FieldHelper, expr),
		value:        expr,
		baseType:     "list",
		ok:           true,
	}
}
