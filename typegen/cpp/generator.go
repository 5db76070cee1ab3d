// Package cpp generates the native half of the bindings: a single C++
// source file that specializes the pyopendds Type<> template for every
// struct and enum, registers the topic types and defines the Python
// extension module.
package cpp

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/logger"
	"github.com/teranos/itl2py/typegen"
	"github.com/teranos/itl2py/typegen/util"
)

// Language is the backend name used in outputs and degraded field reports.
const Language = "cpp"

// UnimplementedMacro is invoked once per degraded field and direction. It
// expands to nothing unless the build defines it.
const UnimplementedMacro = "PYOPENDDS_UNIMPLEMENTED_FIELD"

// Generator implements typegen.Generator for the native extension
type Generator struct {
	opts   typegen.Options
	logger *zap.SugaredLogger
}

// NewGenerator creates a new C++ generator
func NewGenerator(opts typegen.Options) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger.ComponentLogger("typegen.cpp"),
	}
}

// Language returns "cpp"
func (g *Generator) Language() string {
	return Language
}

// FileName is the path of the generated source relative to the output dir.
func (g *Generator) FileName() string {
	return g.opts.NativePackageName + ".cpp"
}

// collector gathers the named types of the whole tree in walk order.
type collector struct {
	ast.NopVisitor
	enums   []*ast.EnumType
	structs []*ast.StructType
}

func (c *collector) VisitStruct(s *ast.StructType) { c.structs = append(c.structs, s) }
func (c *collector) VisitEnum(e *ast.EnumType)     { c.enums = append(c.enums, e) }

// Generate emits <native>.cpp for the whole tree.
func (g *Generator) Generate(root *ast.Module) (*typegen.Output, error) {
	c := &collector{}
	ast.Walk(root, c)

	conv := &converter{
		table:    root.Table(),
		encoding: g.opts.DefaultEncoding,
		known:    make(map[string]bool),
	}
	for _, e := range c.enums {
		conv.known[e.Name.Scoped()] = true
	}
	for _, s := range c.structs {
		conv.known[s.Name.Scoped()] = true
	}

	out := &typegen.Output{}
	e := &emitter{gen: g, conv: conv, out: out}

	body := &codeWriter{}
	for _, en := range c.enums {
		e.enum(body, en)
	}
	for _, s := range orderStructs(c.structs, root.Table()) {
		e.structType(body, s)
	}

	out.Add(typegen.File{
		Path:    g.FileName(),
		Content: []byte(e.render(body)),
		Backend: Language,
	})
	return out, nil
}

// orderStructs puts every struct after the structs its fields convert
// through, keeping walk order otherwise.
func orderStructs(structs []*ast.StructType, tb *ast.Table) []*ast.StructType {
	byName := make(map[string]*ast.StructType, len(structs))
	for _, s := range structs {
		byName[s.Name.Scoped()] = s
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(structs))
	ordered := make([]*ast.StructType, 0, len(structs))

	var visit func(s *ast.StructType)
	visit = func(s *ast.StructType) {
		key := s.Name.Scoped()
		if state[key] != unvisited {
			return
		}
		state[key] = visiting
		for _, f := range s.Fields {
			for _, dep := range structDeps(tb, f.Type) {
				if d, ok := byName[dep]; ok {
					visit(d)
				}
			}
		}
		state[key] = done
		ordered = append(ordered, s)
	}
	for _, s := range structs {
		visit(s)
	}
	return ordered
}

// structDeps lists the named structs reached from id through sequences and
// arrays.
func structDeps(tb *ast.Table, id ast.NodeID) []string {
	switch t := tb.Node(id).(type) {
	case *ast.StructType:
		if t.Named() {
			return []string{t.Name.Scoped()}
		}
	case *ast.SequenceType:
		return structDeps(tb, t.Base)
	case *ast.ArrayType:
		return structDeps(tb, t.Base)
	}
	return nil
}

type emitter struct {
	gen  *Generator
	conv *converter
	out  *typegen.Output

	unimplemented []string
	topics        []string
}

// pythonClass emits get_python_class, which imports the package and walks
// the attribute path down to the class.
func (e *emitter) pythonClass(w *codeWriter, n *ast.Node) {
	w.line("static PyObject* get_python_class()")
	w.open("{")
	w.line("static PyObject* python_class = nullptr;")
	w.open("if (!python_class) {")
	w.line("Ref module = PyImport_ImportModule(%s);", util.CppStringLiteral(e.gen.opts.PackageName))
	w.line("if (!module) throw Exception();")
	for _, segment := range n.Name.Parts {
		w.blank()
		w.line("module = PyObject_GetAttrString(*module, %s);", util.CppStringLiteral(util.PythonIdent(segment)))
		w.line("if (!module) throw Exception();")
	}
	w.line("python_class = *module;")
	w.line("Py_INCREF(python_class);")
	w.close("}")
	w.line("return python_class;")
	w.close("}")
}

func (e *emitter) enum(w *codeWriter, en *ast.EnumType) {
	scoped := en.Name.Scoped()
	w.line("template<>")
	w.open("class %s {", typeRef(&en.Node))
	w.line("public:")
	e.pythonClass(w, &en.Node)
	w.blank()
	w.line("static void cpp_to_python(const %s& cpp, PyObject*& py)", scoped)
	w.open("{")
	w.line("PyObject* cls = get_python_class();")
	w.line(`Ref args = Py_BuildValue("(l)", static_cast<long>(cpp));`)
	w.line("if (!args) throw Exception();")
	w.line("py = PyObject_CallObject(cls, *args);")
	w.line("if (!py) throw Exception();")
	w.close("}")
	w.blank()
	w.line("static void python_to_cpp(PyObject* py, %s& cpp)", scoped)
	w.open("{")
	w.line("Ref value = PyNumber_Long(py);")
	w.line("if (!value) throw Exception();")
	w.line("const long number = PyLong_AsLong(*value);")
	w.line("if (number == -1 && PyErr_Occurred()) throw Exception();")
	w.line("cpp = static_cast< %s>(number);", scoped)
	w.close("}")
	w.close("};")
	w.blank()

	e.gen.logger.Debugw("emitted enum conversion",
		logger.FieldType, scoped,
		logger.FieldCount, len(en.Members))
}

func (e *emitter) structType(w *codeWriter, s *ast.StructType) {
	scoped := s.Name.Scoped()
	notInstance := util.CppStringLiteral("Not a " + scoped)

	reasons := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		reasons[i] = e.conv.unsupported(f.Type)
		if reasons[i] != "" {
			e.degrade(s, f.Name, reasons[i])
		}
	}

	w.line("template<>")
	w.open("class %s {", typeRef(&s.Node))
	w.line("public:")
	e.pythonClass(w, &s.Node)
	w.blank()

	w.line("static void cpp_to_python(const %s& cpp, PyObject*& py)", scoped)
	w.open("{")
	w.line("PyObject* cls = get_python_class();")
	w.open("if (py) {")
	w.line("if (PyObject_IsInstance(py, cls) != 1) throw Exception(%s, PyExc_TypeError);", notInstance)
	w.close("}")
	w.open("else {")
	w.line("py = PyObject_CallObject(cls, nullptr);")
	w.line("if (!py) throw Exception();")
	w.close("}")
	for i, f := range s.Fields {
		w.blank()
		if reasons[i] != "" {
			w.line("%s(%s, %s);", UnimplementedMacro, scoped, util.CppMember(f.Name))
			continue
		}
		w.line("// %s", f.Name)
		w.open("{")
		w.line("PyObject* field_value = nullptr;")
		e.conv.toPython(w, f.Type, "cpp."+util.CppMember(f.Name), "field_value", 0)
		w.line("itl2py_set_attr(py, %s, field_value);", util.CppStringLiteral(util.PythonIdent(f.Name)))
		w.close("}")
	}
	w.close("}")
	w.blank()

	w.line("static void python_to_cpp(PyObject* py, %s& cpp)", scoped)
	w.open("{")
	w.line("PyObject* cls = get_python_class();")
	w.line("if (PyObject_IsInstance(py, cls) != 1) throw Exception(%s, PyExc_TypeError);", notInstance)
	for i, f := range s.Fields {
		w.blank()
		if reasons[i] != "" {
			w.line("%s(%s, %s);", UnimplementedMacro, scoped, util.CppMember(f.Name))
			continue
		}
		attr := util.PythonIdent(f.Name)
		w.line("// %s", f.Name)
		w.open("{")
		w.line("Ref field_value = itl2py_get_attr(py, %s, %s);",
			util.CppStringLiteral(attr),
			util.CppStringLiteral(fmt.Sprintf("%s has no attribute '%s'", scoped, attr)))
		e.conv.fromPython(w, f.Type, "*field_value", "cpp."+util.CppMember(f.Name), 0)
		w.close("}")
	}
	w.close("}")
	w.close("};")
	w.blank()

	if s.IsTopicType {
		e.topics = append(e.topics, scoped)
		e.out.TopicTypes = append(e.out.TopicTypes, scoped)
	}
	e.gen.logger.Debugw("emitted struct conversion",
		logger.FieldType, scoped,
		logger.FieldCount, len(s.Fields),
		logger.FieldTopic, s.IsTopicType)
}

func (e *emitter) degrade(s *ast.StructType, field, reason string) {
	e.unimplemented = append(e.unimplemented, s.Name.Scoped()+"."+field)
	e.out.Degrade(typegen.DegradedField{
		Backend: Language,
		Type:    s.Name.Scoped(),
		Field:   field,
		Reason:  reason,
	})
	e.gen.logger.Warnw("field left unimplemented",
		logger.FieldBackend, Language,
		logger.FieldType, s.Name.Scoped(),
		logger.FieldField, field,
		logger.FieldReason, reason)
}

func (e *emitter) render(body *codeWriter) string {
	native := e.gen.opts.NativePackageName
	w := &codeWriter{}

	w.line("// %s", strings.TrimPrefix(typegen.Header, "# "))
	w.line("// Native module %s for package %s", native, e.gen.opts.PackageName)
	w.blank()
	w.line("#include <pyopendds/user.hpp>")
	for _, idl := range e.gen.opts.IDLNames {
		w.line("#include <%sTypeSupportImpl.h>", idl)
	}
	if v := e.gen.opts.MinOpenDDSVersion; v != nil {
		w.blank()
		w.line("#include <dds/Version.h>")
		w.line("#if !OPENDDS_VERSION_AT_LEAST(%d, %d, %d)", v.Major(), v.Minor(), v.Patch())
		w.line("#  error %s", util.CppStringLiteral(fmt.Sprintf("%s requires OpenDDS %s or newer", native, v.String())))
		w.line("#endif")
	}
	w.blank()
	w.line("#ifndef %s", UnimplementedMacro)
	w.line("#  define %s(TYPE, FIELD)", UnimplementedMacro)
	w.line("#endif")
	w.blank()

	w.line("namespace pyopendds {")
	w.blank()
	for _, name := range []string{"pyopendds_", "PyOpenDDS_Error_", "ReturnCodeError_"} {
		w.line("PyObject* Errors::%s = nullptr;", name)
	}
	w.line("TopicTypeBase::TopicTypes TopicTypeBase::topic_types_;")
	w.blank()
	w.line("namespace {")
	w.blank()
	w.line("void itl2py_set_attr(PyObject* py, const char* name, PyObject* value)")
	w.open("{")
	w.line("if (!value) throw Exception();")
	w.line("const int error = PyObject_SetAttrString(py, name, value);")
	w.line("Py_DECREF(value);")
	w.line("if (error) throw Exception();")
	w.close("}")
	w.blank()
	w.line("PyObject* itl2py_get_attr(PyObject* py, const char* name, const char* missing)")
	w.open("{")
	w.line("PyObject* value = PyObject_GetAttrString(py, name);")
	w.open("if (!value) {")
	w.line("PyErr_Clear();")
	w.line("throw Exception(missing, PyExc_AttributeError);")
	w.close("}")
	w.line("return value;")
	w.close("}")
	w.blank()
	w.line("void itl2py_append(PyObject* list, PyObject* item)")
	w.open("{")
	w.line("if (!item) throw Exception();")
	w.line("const int error = PyList_Append(list, item);")
	w.line("Py_DECREF(item);")
	w.line("if (error) throw Exception();")
	w.close("}")
	w.blank()
	w.line("const char* const unimplemented_fields[] = {")
	w.indent++
	for _, u := range e.unimplemented {
		w.line("%s,", util.CppStringLiteral(u))
	}
	w.line("nullptr")
	w.indent--
	w.line("};")
	w.blank()
	w.line("} // namespace")
	w.blank()
	w.sb.WriteString(body.String())
	w.line("} // namespace pyopendds")
	w.blank()

	e.entryPoints(w)
	return w.String()
}

func (e *emitter) entryPoints(w *codeWriter) {
	native := e.gen.opts.NativePackageName

	w.line("namespace {")
	w.blank()
	w.line("using namespace pyopendds;")
	w.blank()
	w.line("TopicTypeBase* find_topic_type(PyObject* pytype)")
	w.open("{")
	w.line("TopicTypeBase* topic_type = TopicTypeBase::find(pytype);")
	w.line(`if (!topic_type) throw Exception("Not a topic type of ` + native + `", PyExc_TypeError);`)
	w.line("return topic_type;")
	w.close("}")
	w.blank()

	w.line("/// Register a topic type with a DomainParticipant")
	w.line("PyObject* pyregister_type(PyObject* self, PyObject* args)")
	w.open("{")
	w.line("Ref pyparticipant;")
	w.line("Ref pytype;")
	w.line(`if (!PyArg_ParseTuple(args, "OO", &*pyparticipant, &*pytype)) return nullptr;`)
	w.line("pyparticipant++;")
	w.line("pytype++;")
	w.blank()
	w.open("try {")
	w.line("find_topic_type(*pytype)->register_type(*pyparticipant);")
	w.close("}")
	w.open("catch (const Exception& e) {")
	w.line("return e.set();")
	w.close("}")
	w.line("Py_RETURN_NONE;")
	w.close("}")
	w.blank()

	w.line("/// Get the registered type name of a topic type")
	w.line("PyObject* pytype_name(PyObject* self, PyObject* args)")
	w.open("{")
	w.line("Ref pytype;")
	w.line(`if (!PyArg_ParseTuple(args, "O", &*pytype)) return nullptr;`)
	w.line("pytype++;")
	w.blank()
	w.open("try {")
	w.line("return PyUnicode_FromString(find_topic_type(*pytype)->type_name());")
	w.close("}")
	w.open("catch (const Exception& e) {")
	w.line("return e.set();")
	w.close("}")
	w.close("}")
	w.blank()

	w.line("/// Take the next sample from a DataReader")
	w.line("PyObject* pytake_next_sample(PyObject* self, PyObject* args)")
	w.open("{")
	w.line("Ref pyreader;")
	w.line(`if (!PyArg_ParseTuple(args, "O", &*pyreader)) return nullptr;`)
	w.line("pyreader++;")
	w.blank()
	w.line(`Ref pytopic = PyObject_GetAttrString(*pyreader, "topic");`)
	w.line("if (!pytopic) return nullptr;")
	w.line(`Ref pytype = PyObject_GetAttrString(*pytopic, "type");`)
	w.line("if (!pytype) return nullptr;")
	w.blank()
	w.open("try {")
	w.line("return find_topic_type(*pytype)->take_next_sample(*pyreader);")
	w.close("}")
	w.open("catch (const Exception& e) {")
	w.line("return e.set();")
	w.close("}")
	w.close("}")
	w.blank()

	w.line("/// Write a sample with a DataWriter")
	w.line("PyObject* pywrite(PyObject* self, PyObject* args)")
	w.open("{")
	w.line("Ref pywriter;")
	w.line("Ref pysample;")
	w.line(`if (!PyArg_ParseTuple(args, "OO", &*pywriter, &*pysample)) return nullptr;`)
	w.line("pywriter++;")
	w.line("pysample++;")
	w.blank()
	w.line(`Ref pytopic = PyObject_GetAttrString(*pywriter, "topic");`)
	w.line("if (!pytopic) return nullptr;")
	w.line(`Ref pytype = PyObject_GetAttrString(*pytopic, "type");`)
	w.line("if (!pytype) return nullptr;")
	w.blank()
	w.open("try {")
	w.line("return find_topic_type(*pytype)->write(*pywriter, *pysample);")
	w.close("}")
	w.open("catch (const Exception& e) {")
	w.line("return e.set();")
	w.close("}")
	w.close("}")
	w.blank()

	w.line("PyMethodDef native_methods[] = {")
	w.indent++
	w.line(`{"register_type", pyregister_type, METH_VARARGS, "Register a topic type with a DomainParticipant"},`)
	w.line(`{"type_name", pytype_name, METH_VARARGS, "Get the registered type name"},`)
	w.line(`{"take_next_sample", pytake_next_sample, METH_VARARGS, "Take the next sample from a DataReader"},`)
	w.line(`{"write", pywrite, METH_VARARGS, "Write a sample with a DataWriter"},`)
	w.line("{nullptr, nullptr, 0, nullptr}")
	w.indent--
	w.line("};")
	w.blank()

	w.line("PyModuleDef native_def = {")
	w.indent++
	w.line("PyModuleDef_HEAD_INIT,")
	w.line("%s,", util.CppStringLiteral(native))
	w.line("%s,", util.CppStringLiteral(fmt.Sprintf("pyopendds native module for %s", e.gen.opts.PackageName)))
	w.line("-1,")
	w.line("native_methods,")
	w.line("nullptr, nullptr, nullptr, nullptr")
	w.indent--
	w.line("};")
	w.blank()
	w.line("} // namespace")
	w.blank()

	w.line("PyMODINIT_FUNC PyInit_%s()", native)
	w.open("{")
	w.line("PyObject* native_module = PyModule_Create(&native_def);")
	w.line("if (!native_module) return nullptr;")
	w.blank()
	w.line("PyObject* unimplemented = PyList_New(0);")
	w.open("if (!unimplemented) {")
	w.line("Py_DECREF(native_module);")
	w.line("return nullptr;")
	w.close("}")
	w.open("for (const char* const* name = pyopendds::unimplemented_fields; *name; ++name) {")
	w.line("PyObject* item = PyUnicode_FromString(*name);")
	w.open("if (!item || PyList_Append(unimplemented, item)) {")
	w.line("Py_XDECREF(item);")
	w.line("Py_DECREF(unimplemented);")
	w.line("Py_DECREF(native_module);")
	w.line("return nullptr;")
	w.close("}")
	w.line("Py_DECREF(item);")
	w.close("}")
	w.open(`if (PyModule_AddObject(native_module, "unimplemented_fields", unimplemented)) {`)
	w.line("Py_DECREF(unimplemented);")
	w.line("Py_DECREF(native_module);")
	w.line("return nullptr;")
	w.close("}")
	w.blank()
	w.open("try {")
	for _, topic := range e.topics {
		w.line("pyopendds::TopicType<%s>::init();", " "+topic)
	}
	w.close("}")
	w.open("catch (const pyopendds::Exception& e) {")
	w.line("Py_DECREF(native_module);")
	w.line("e.set();")
	w.line("return nullptr;")
	w.close("}")
	w.blank()
	w.line("return native_module;")
	w.close("}")
}
