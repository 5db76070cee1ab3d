// Package display renders the module tree and run results for the CLI.
package display

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/errors"
)

// Dump formats.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ModuleDump is the serializable form of a module.
type ModuleDump struct {
	Name       string       `json:"name" yaml:"name"`
	Types      []TypeDump   `json:"types,omitempty" yaml:"types,omitempty"`
	Submodules []ModuleDump `json:"submodules,omitempty" yaml:"submodules,omitempty"`
}

// TypeDump is the serializable form of a named type.
type TypeDump struct {
	Kind       string       `json:"kind" yaml:"kind"`
	Name       string       `json:"name" yaml:"name"`
	Topic      bool         `json:"topic,omitempty" yaml:"topic,omitempty"`
	Fields     []FieldDump  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Size       int          `json:"size,omitempty" yaml:"size,omitempty"`
	Members    []MemberDump `json:"members,omitempty" yaml:"members,omitempty"`
	Base       string       `json:"base,omitempty" yaml:"base,omitempty"`
	MaxCount   *int         `json:"max_count,omitempty" yaml:"max_count,omitempty"`
	Dimensions []int        `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

type FieldDump struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
}

type MemberDump struct {
	Name  string `json:"name" yaml:"name"`
	Value int64  `json:"value" yaml:"value"`
}

// NewModuleDump converts the tree below m.
func NewModuleDump(m *ast.Module) ModuleDump {
	d := ModuleDump{Name: m.Name().Scoped()}
	tb := m.Table()
	for _, t := range m.Types() {
		d.Types = append(d.Types, newTypeDump(t, tb))
	}
	for _, sub := range m.Submodules() {
		d.Submodules = append(d.Submodules, NewModuleDump(sub))
	}
	return d
}

func describeRef(tb *ast.Table, id ast.NodeID) string {
	t := tb.Node(id)
	if t == nil {
		return "<missing>"
	}
	return ast.Describe(t, tb)
}

func newTypeDump(t ast.Type, tb *ast.Table) TypeDump {
	d := TypeDump{Name: ast.HeaderOf(t).Name.Scoped()}
	switch t := t.(type) {
	case *ast.PrimitiveType:
		d.Kind = "primitive"
		d.Base = t.Kind.String()
		d.MaxCount = t.ElementCountLimit
	case *ast.StructType:
		d.Kind = "struct"
		d.Topic = t.IsTopicType
		for _, f := range t.Fields {
			d.Fields = append(d.Fields, FieldDump{Name: f.Name, Type: describeRef(tb, f.Type), Optional: f.Optional})
		}
	case *ast.EnumType:
		d.Kind = "enum"
		d.Size = t.Size
		for _, m := range t.Members {
			d.Members = append(d.Members, MemberDump{Name: m.Name, Value: m.Value})
		}
	case *ast.SequenceType:
		d.Kind = "sequence"
		d.Base = describeRef(tb, t.Base)
		d.MaxCount = t.MaxCount
	case *ast.ArrayType:
		d.Kind = "array"
		d.Base = describeRef(tb, t.Base)
		d.Dimensions = t.Dimensions
	}
	return d
}

// Dump writes the module tree below root to w in the given format.
func Dump(w io.Writer, root *ast.Module, format string) error {
	switch format {
	case FormatTree, "":
		return dumpTree(w, root)
	case FormatJSON:
		return OutputJSON(w, NewModuleDump(root))
	case FormatYAML:
		data, err := yaml.Marshal(NewModuleDump(root))
		if err != nil {
			return errors.Wrap(err, "failed to marshal YAML")
		}
		_, err = w.Write(data)
		return err
	}
	return errors.Newf("unknown dump format %q", format)
}

func dumpTree(w io.Writer, root *ast.Module) error {
	text, err := pterm.DefaultTree.WithRoot(moduleNode(root)).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render tree")
	}
	_, err = fmt.Fprint(w, text)
	return err
}

func moduleNode(m *ast.Module) pterm.TreeNode {
	node := pterm.TreeNode{Text: ast.DescribeModule(m)}
	tb := m.Table()
	for _, t := range m.Types() {
		child := pterm.TreeNode{Text: ast.Describe(t, tb)}
		if s, ok := t.(*ast.StructType); ok {
			if s.IsTopicType {
				child.Text += " (topic)"
			}
			for _, f := range s.Fields {
				child.Children = append(child.Children, pterm.TreeNode{
					Text: fmt.Sprintf("%s: %s", f.Name, describeRef(tb, f.Type)),
				})
			}
		}
		if e, ok := t.(*ast.EnumType); ok {
			for _, member := range e.Members {
				child.Children = append(child.Children, pterm.TreeNode{
					Text: fmt.Sprintf("%s = %d", member.Name, member.Value),
				})
			}
		}
		node.Children = append(node.Children, child)
	}
	for _, sub := range m.Submodules() {
		node.Children = append(node.Children, moduleNode(sub))
	}
	return node
}
