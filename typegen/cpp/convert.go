package cpp

import (
	"fmt"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/typegen/util"
)

// runtimeTypes maps primitive kinds to the Type<> specializations the
// pyopendds runtime provides in basictype.hpp.
// nolint:gochecknoglobals
var runtimeTypes = map[ast.PrimitiveKind]string{
	ast.KindBool: "b",
	ast.KindByte: "u8",
	ast.KindU8:   "u8",
	ast.KindU16:  "u16",
	ast.KindI16:  "i16",
	ast.KindU32:  "u32",
	ast.KindI32:  "i32",
	ast.KindU64:  "u64",
	ast.KindI64:  "i64",
	ast.KindF32:  "f32",
	ast.KindF64:  "f64",
	ast.KindC8:   "c8",
	ast.KindC16:  "c16",
	ast.KindS8:   "s8",
}

// converter emits the per-field conversion code.
type converter struct {
	table    *ast.Table
	encoding string
	// known holds the scoped names that get a Type<> specialization.
	known map[string]bool
}

// typeRef spells Type<> for a named node. The space avoids the "<:" digraph.
func typeRef(n *ast.Node) string {
	return fmt.Sprintf("Type< %s>", n.Name.Scoped())
}

// supported reports why a field type cannot be converted, or "" when it can.
func (c *converter) unsupported(id ast.NodeID) string {
	switch t := c.table.Node(id).(type) {
	case nil:
		return fmt.Sprintf("type node %d is missing", id)
	case *ast.PrimitiveType:
		if _, ok := runtimeTypes[t.Kind]; !ok {
			return fmt.Sprintf("no %s conversion in the pyopendds runtime", t.Kind)
		}
		return ""
	case *ast.StructType:
		return c.unknownNamed(&t.Node, "struct")
	case *ast.EnumType:
		return c.unknownNamed(&t.Node, "enum")
	case *ast.SequenceType:
		if reason := c.unsupported(t.Base); reason != "" {
			return "sequence element: " + reason
		}
		return ""
	case *ast.ArrayType:
		if len(t.Dimensions) == 0 {
			return "array without dimensions"
		}
		if reason := c.unsupported(t.Base); reason != "" {
			return "array element: " + reason
		}
		return ""
	}
	return "unknown type variant"
}

func (c *converter) unknownNamed(n *ast.Node, what string) string {
	if !n.Named() {
		return "anonymous " + what
	}
	if !c.known[n.Name.Scoped()] {
		return fmt.Sprintf("%s %s has no generated conversion", what, n.Name.Scoped())
	}
	return ""
}

// toPython converts the C++ lvalue src into a new reference stored in dst.
func (c *converter) toPython(w *codeWriter, id ast.NodeID, src, dst string, depth int) {
	switch t := c.table.Node(id).(type) {
	case *ast.PrimitiveType:
		if t.IsString() {
			w.line("Type<%s>::cpp_to_python(%s, %s, %s);", runtimeTypes[t.Kind], src, dst, util.CppStringLiteral(c.encoding))
			return
		}
		w.line("Type<%s>::cpp_to_python(%s, %s);", runtimeTypes[t.Kind], src, dst)
	case *ast.StructType:
		w.line("%s::cpp_to_python(%s, %s);", typeRef(&t.Node), src, dst)
	case *ast.EnumType:
		w.line("%s::cpp_to_python(%s, %s);", typeRef(&t.Node), src, dst)
	case *ast.SequenceType:
		i := fmt.Sprintf("i%d", depth)
		e := fmt.Sprintf("e%d", depth)
		w.line("%s = PyList_New(0);", dst)
		w.line("if (!%s) throw Exception();", dst)
		w.open("for (CORBA::ULong %s = 0; %s < %s.length(); ++%s) {", i, i, src, i)
		w.line("PyObject* %s = nullptr;", e)
		c.toPython(w, t.Base, fmt.Sprintf("%s[%s]", src, i), e, depth+1)
		w.line("itl2py_append(%s, %s);", dst, e)
		w.close("}")
	case *ast.ArrayType:
		c.arrayToPython(w, t.Base, t.Dimensions, src, dst, depth)
	}
}

func (c *converter) arrayToPython(w *codeWriter, base ast.NodeID, dims []int, src, dst string, depth int) {
	if len(dims) == 0 {
		c.toPython(w, base, src, dst, depth)
		return
	}
	i := fmt.Sprintf("i%d", depth)
	e := fmt.Sprintf("e%d", depth)
	w.line("%s = PyList_New(0);", dst)
	w.line("if (!%s) throw Exception();", dst)
	w.open("for (unsigned int %s = 0; %s < %d; ++%s) {", i, i, dims[0], i)
	w.line("PyObject* %s = nullptr;", e)
	c.arrayToPython(w, base, dims[1:], fmt.Sprintf("%s[%s]", src, i), e, depth+1)
	w.line("itl2py_append(%s, %s);", dst, e)
	w.close("}")
}

// fromPython converts the borrowed Python object src into the C++ lvalue dst.
func (c *converter) fromPython(w *codeWriter, id ast.NodeID, src, dst string, depth int) {
	switch t := c.table.Node(id).(type) {
	case *ast.PrimitiveType:
		if t.IsString() {
			w.line("Type<%s>::python_to_cpp(%s, %s, %s);", runtimeTypes[t.Kind], src, dst, util.CppStringLiteral(c.encoding))
			return
		}
		w.line("Type<%s>::python_to_cpp(%s, %s);", runtimeTypes[t.Kind], src, dst)
	case *ast.StructType:
		w.line("%s::python_to_cpp(%s, %s);", typeRef(&t.Node), src, dst)
	case *ast.EnumType:
		w.line("%s::python_to_cpp(%s, %s);", typeRef(&t.Node), src, dst)
	case *ast.SequenceType:
		// The native container takes the Python length; bounds are left to
		// the DDS serializer.
		n := fmt.Sprintf("n%d", depth)
		i := fmt.Sprintf("i%d", depth)
		e := fmt.Sprintf("e%d", depth)
		w.line("const Py_ssize_t %s = PySequence_Size(%s);", n, src)
		w.line("if (%s < 0) throw Exception();", n)
		w.line("%s.length(static_cast<CORBA::ULong>(%s));", dst, n)
		w.open("for (Py_ssize_t %s = 0; %s < %s; ++%s) {", i, i, n, i)
		w.line("Ref %s = PySequence_GetItem(%s, %s);", e, src, i)
		w.line("if (!%s) throw Exception();", e)
		c.fromPython(w, t.Base, "*"+e, fmt.Sprintf("%s[%s]", dst, i), depth+1)
		w.close("}")
	case *ast.ArrayType:
		c.arrayFromPython(w, t.Base, t.Dimensions, src, dst, depth)
	}
}

func (c *converter) arrayFromPython(w *codeWriter, base ast.NodeID, dims []int, src, dst string, depth int) {
	if len(dims) == 0 {
		c.fromPython(w, base, src, dst, depth)
		return
	}
	i := fmt.Sprintf("i%d", depth)
	e := fmt.Sprintf("e%d", depth)
	w.open("for (Py_ssize_t %s = 0; %s < %d; ++%s) {", i, i, dims[0], i)
	w.line("Ref %s = PySequence_GetItem(%s, %s);", e, src, i)
	w.line("if (!%s) throw Exception();", e)
	c.arrayFromPython(w, base, dims[1:], "*"+e, fmt.Sprintf("%s[%s]", dst, i), depth+1)
	w.close("}")
}
