package ast

import (
	"fmt"
	"strings"
)

// Describe renders a one-line summary of t, e.g.
// "<StructType ::Test::Reading>" or "<SequenceType: <PrimitiveType u8> max 5>".
func Describe(t Type, tb *Table) string {
	return Match[string](t, describer{tb: tb})
}

// DescribeModule renders a module header line.
func DescribeModule(m *Module) string {
	if m.IsRoot() {
		return "<Module :: (Root Module)>"
	}
	return "<Module " + m.Name().Scoped() + ">"
}

type describer struct {
	tb *Table
}

func template(kind string, n *Node, contents string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(kind)
	if n.Named() {
		b.WriteString(" ")
		b.WriteString(n.Name.Scoped())
	}
	if contents != "" {
		b.WriteString(": ")
		b.WriteString(contents)
	}
	b.WriteString(">")
	return b.String()
}

func (d describer) ref(id NodeID) string {
	t := d.tb.Node(id)
	if t == nil {
		return "<missing>"
	}
	return Describe(t, d.tb)
}

func (d describer) Primitive(p *PrimitiveType) string {
	contents := p.Kind.String()
	if p.ElementCountLimit != nil {
		contents += fmt.Sprintf(" max %d", *p.ElementCountLimit)
	}
	return template("PrimitiveType", &p.Node, contents)
}

func (d describer) Struct(s *StructType) string {
	return template("StructType", &s.Node, "")
}

func (d describer) Enum(e *EnumType) string {
	return template("EnumType", &e.Node, fmt.Sprintf("%d bits", e.Size))
}

func (d describer) Array(a *ArrayType) string {
	var dims strings.Builder
	for _, dim := range a.Dimensions {
		fmt.Fprintf(&dims, "[%d]", dim)
	}
	return template("ArrayType", &a.Node, d.ref(a.Base)+dims.String())
}

func (d describer) Sequence(s *SequenceType) string {
	bound := "no max"
	if s.MaxCount != nil {
		bound = fmt.Sprintf("max %d", *s.MaxCount)
	}
	return template("SequenceType", &s.Node, d.ref(s.Base)+" "+bound)
}
