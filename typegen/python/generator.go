// Package python generates the Python package half of the bindings: one
// __init__.py per IDL module with a dataclass per struct, an IntFlag per
// enum and a list subclass per named sequence or array typedef.
package python

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/logger"
	"github.com/teranos/itl2py/typegen"
	"github.com/teranos/itl2py/typegen/util"
)

// Language is the backend name used in outputs and degraded field reports.
const Language = "python"

// UnimplementedAttr lists the fields of a dataclass the generator degraded.
const UnimplementedAttr = "_pyopendds_unimplemented"

// TypeSupportAttr links a topic dataclass to its native module. The
// spelling matches what the pyopendds runtime looks up.
const TypeSupportAttr = "_pyopendds_typesupport_packge_name"

// Private aliases for the helpers a class body calls. A member is free to
// be named field or list.
const (
	FieldHelper   = "_pyopendds_field"
	BuiltinsAlias = "_pyopendds_builtins"
)

// Generator implements typegen.Generator for Python
type Generator struct {
	opts   typegen.Options
	logger *zap.SugaredLogger
}

// NewGenerator creates a new Python generator
func NewGenerator(opts typegen.Options) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger.ComponentLogger("typegen.python"),
	}
}

// Language returns "python"
func (g *Generator) Language() string {
	return Language
}

// Generate produces one __init__.py per module, starting at root.
func (g *Generator) Generate(root *ast.Module) (*typegen.Output, error) {
	out := &typegen.Output{}
	newModuleGenerator(g, root, root, out).run()
	return out, nil
}

// moduleGenerator renders a single module. Submodules get their own
// moduleGenerator through VisitModule.
type moduleGenerator struct {
	gen    *Generator
	root   *ast.Module
	module *ast.Module
	out    *typegen.Output

	blocks     []string
	exports    []string
	submodules []string

	usesStruct  bool
	usesEnum    bool
	usesField    bool
	usesBuiltins bool
	usesPackage  bool
}

func newModuleGenerator(gen *Generator, root, module *ast.Module, out *typegen.Output) *moduleGenerator {
	return &moduleGenerator{gen: gen, root: root, module: module, out: out}
}

func (m *moduleGenerator) run() {
	ast.Walk(m.module, m)
	m.out.Add(typegen.File{
		Path:    m.filePath(),
		Content: []byte(m.render()),
		Backend: Language,
	})
}

func (m *moduleGenerator) filePath() string {
	parts := []string{m.gen.opts.PackageName}
	for _, segment := range m.module.Name().Parts {
		parts = append(parts, util.PythonIdent(segment))
	}
	parts = append(parts, "__init__.py")
	return path.Join(parts...)
}

// VisitModule recurses into a submodule with a fresh generator.
func (m *moduleGenerator) VisitModule(sub *ast.Module) {
	m.submodules = append(m.submodules, util.PythonIdent(sub.LocalName()))
	newModuleGenerator(m.gen, m.root, sub, m.out).run()
}

func (m *moduleGenerator) VisitStruct(s *ast.StructType) {
	m.usesStruct = true
	name := util.PythonIdent(s.LocalName())

	var fields []string
	var unimplemented []string
	declared := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		fieldName := util.PythonIdent(f.Name)
		v := m.valueOf(f.Type)
		if !v.ok {
			unimplemented = append(unimplemented, fieldName)
			m.degrade(s, f.Name, v.reason)
			fields = append(fields, fmt.Sprintf("    %s: object = None", fieldName))
			declared[fieldName] = true
			continue
		}
		def := v.fieldDefault
		if v.localRef != "" && declared[v.localRef] {
			def = v.lazyDefault
		}
		if strings.HasPrefix(def, FieldHelper+"(") {
			m.usesField = true
		}
		if strings.Contains(def, BuiltinsAlias+".") {
			m.usesBuiltins = true
		}
		fields = append(fields, fmt.Sprintf("    %s: %s = %s", fieldName, v.annotation, def))
		declared[fieldName] = true
	}

	var sb strings.Builder
	sb.WriteString("@_pyopendds_struct\n")
	sb.WriteString(fmt.Sprintf("class %s:\n", name))

	attrs := 0
	if s.IsTopicType {
		sb.WriteString(fmt.Sprintf("    %s = %s\n", TypeSupportAttr, util.PythonStringLiteral(m.gen.opts.NativePackageName)))
		m.out.TopicTypes = append(m.out.TopicTypes, s.Name.Scoped())
		attrs++
	}
	if len(unimplemented) > 0 {
		quoted := make([]string, 0, len(unimplemented))
		for _, u := range unimplemented {
			quoted = append(quoted, util.PythonStringLiteral(u))
		}
		sb.WriteString(fmt.Sprintf("    %s = (%s,)\n", UnimplementedAttr, strings.Join(quoted, ", ")))
		attrs++
	}

	switch {
	case len(fields) > 0:
		if attrs > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(strings.Join(fields, "\n"))
		sb.WriteString("\n")
	case attrs == 0:
		sb.WriteString("    pass\n")
	}

	m.gen.logger.Debugw("emitted dataclass",
		logger.FieldType, s.Name.Scoped(),
		logger.FieldCount, len(s.Fields))
	m.add(name, sb.String())
}

func (m *moduleGenerator) VisitEnum(e *ast.EnumType) {
	m.usesEnum = true
	name := util.PythonIdent(e.LocalName())

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s(_pyopendds_enum):\n", name))
	for _, member := range e.Members {
		sb.WriteString(fmt.Sprintf("    %s = %d\n", util.PythonIdent(member.Name), member.Value))
	}
	m.add(name, sb.String())
}

func (m *moduleGenerator) VisitSequence(s *ast.SequenceType) {
	name := util.PythonIdent(s.LocalName())
	maxLen := "None"
	if s.MaxCount != nil {
		maxLen = fmt.Sprint(*s.MaxCount)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s(list):\n", name))
	sb.WriteString(fmt.Sprintf("    _base_type = %s\n", m.valueOf(s.Base).baseTypeOrObject()))
	sb.WriteString(fmt.Sprintf("    _max_len = %s\n", maxLen))
	m.add(name, sb.String())
}

func (m *moduleGenerator) VisitArray(a *ast.ArrayType) {
	name := util.PythonIdent(a.LocalName())
	dims := make([]string, 0, len(a.Dimensions))
	for _, d := range a.Dimensions {
		dims = append(dims, fmt.Sprint(d))
	}
	tuple := strings.Join(dims, ", ")
	if len(dims) == 1 {
		tuple += ","
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("class %s(list):\n", name))
	sb.WriteString(fmt.Sprintf("    _base_type = %s\n", m.valueOf(a.Base).baseTypeOrObject()))
	sb.WriteString(fmt.Sprintf("    _dimensions = (%s)\n", tuple))
	m.add(name, sb.String())
}

func (m *moduleGenerator) add(name, block string) {
	m.exports = append(m.exports, name)
	m.blocks = append(m.blocks, block)
}

func (m *moduleGenerator) degrade(s *ast.StructType, field, reason string) {
	m.out.Degrade(typegen.DegradedField{
		Backend: Language,
		Type:    s.Name.Scoped(),
		Field:   field,
		Reason:  reason,
	})
	m.gen.logger.Warnw("field left unimplemented",
		logger.FieldBackend, Language,
		logger.FieldType, s.Name.Scoped(),
		logger.FieldField, field,
		logger.FieldReason, reason)
}

func (m *moduleGenerator) render() string {
	var sb strings.Builder
	sb.WriteString(typegen.Header + "\n")
	if m.module.IsRoot() {
		sb.WriteString(fmt.Sprintf("# Package %s\n", m.gen.opts.PackageName))
	} else {
		sb.WriteString(fmt.Sprintf("# Module %s\n", m.module.Name().Scoped()))
	}
	sb.WriteString("\nfrom __future__ import annotations\n")

	if m.usesStruct || m.usesEnum {
		sb.WriteString("\n")
	}
	if m.usesBuiltins {
		sb.WriteString(fmt.Sprintf("import builtins as %s\n", BuiltinsAlias))
	}
	if m.usesStruct {
		sb.WriteString("from dataclasses import dataclass as _pyopendds_struct\n")
		if m.usesField {
			sb.WriteString(fmt.Sprintf("from dataclasses import field as %s\n", FieldHelper))
		}
	}
	if m.usesEnum {
		sb.WriteString("from enum import IntFlag as _pyopendds_enum\n")
	}
	if m.usesPackage {
		sb.WriteString(fmt.Sprintf("\nimport %s\n", m.gen.opts.PackageName))
	}

	if len(m.submodules) > 0 {
		sb.WriteString("\n")
		for _, sub := range m.submodules {
			sb.WriteString(fmt.Sprintf("from . import %s\n", sub))
		}
	}

	for _, block := range m.blocks {
		sb.WriteString("\n\n")
		sb.WriteString(block)
	}

	exports := append(append([]string(nil), m.exports...), m.submodules...)
	quoted := make([]string, 0, len(exports))
	for _, e := range exports {
		quoted = append(quoted, util.PythonStringLiteral(e))
	}
	sb.WriteString(fmt.Sprintf("\n\n__all__ = [%s]\n", strings.Join(quoted, ", ")))
	return sb.String()
}
