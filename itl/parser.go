package itl

import (
	"go.uber.org/zap"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/errors"
	"github.com/teranos/itl2py/logger"
)

// Kind discriminators of inline definitions.
const (
	KindInt      = "int"
	KindFloat    = "float"
	KindFixed    = "fixed"
	KindString   = "string"
	KindSequence = "sequence"
	KindRecord   = "record"
	KindUnion    = "union"
	KindAlias    = "alias"
)

// Parser turns raw ITL type descriptions into nodes of a Table. One Parser
// is the only writer of its table.
type Parser struct {
	table  *ast.Table
	logger *zap.SugaredLogger
}

// NewParser returns a parser that fills table.
func NewParser(table *ast.Table) *Parser {
	return &Parser{
		table:  table,
		logger: logger.ComponentLogger("itl.parser"),
	}
}

// Table returns the table the parser writes to.
func (p *Parser) Table() *ast.Table { return p.table }

// ParseDocument parses every entry of doc.Types in order and indexes each
// named result unless its name is already present. The IDL compiler repeats
// definitions of included files, so the first definition wins.
func (p *Parser) ParseDocument(doc *Document) error {
	for i, raw := range doc.Types {
		t, err := p.ParseType(raw)
		if err != nil {
			return errors.Wrapf(err, "types[%d]", i)
		}
		h := ast.HeaderOf(t)
		if !h.Named() {
			p.logger.Debugw("skipping anonymous top-level type", "index", i)
			continue
		}
		if !p.table.Insert(t) {
			p.logger.Debugw("keeping first definition", logger.FieldType, h.Name.ITLName())
		}
	}
	return nil
}

// ParseType resolves a reference or parses an inline definition. Every
// returned node is allocated in the parser's table.
func (p *Parser) ParseType(raw RawType) (ast.Type, error) {
	if raw.IsRef() {
		if t, ok := p.table.Lookup(raw.Ref); ok {
			return t, nil
		}
		return nil, errors.WithHint(
			errors.NewSchemaError(errors.ErrUnknownTypeReference, "invalid type %q", raw.Ref),
			"the referenced type must be defined earlier in the same ITL file or an earlier input",
		)
	}
	return p.parseDefinition(raw.Def)
}

func (p *Parser) parseDefinition(def *Definition) (ast.Type, error) {
	switch def.Kind {
	case KindInt:
		return p.parseInt(def)
	case KindFloat:
		return p.parseFloat(def)
	case KindString:
		return p.parseString(def)
	case KindSequence:
		return p.parseSequence(def)
	case KindRecord:
		return p.parseRecord(def)
	case KindAlias:
		return p.parseAlias(def)
	case KindUnion, KindFixed:
		return nil, errors.NewSchemaError(errors.ErrNotImplemented, "%s types are not supported", def.Kind)
	default:
		return nil, errors.NewSchemaError(errors.ErrUnsupportedKind, "kind %q is not a valid type kind", def.Kind)
	}
}

func (p *Parser) parseInt(def *Definition) (ast.Type, error) {
	idlType := def.Note.IDL.Type
	presentation := def.Note.Presentation.Type

	isChar := presentation == "char" || idlType == "wchar"
	isBool := presentation == "bool"
	isEnum := def.Constrained && len(def.Values) > 0
	isByte := idlType == "octet" && !isChar && !isBool && !isEnum

	size := 0
	if def.Bits != nil {
		size = *def.Bits
	}
	switch {
	case isChar && def.Bits == nil:
		size = 8
		if idlType == "wchar" {
			size = 16
		}
	case isBool:
		size = 8
	}

	if isEnum {
		if size == 0 {
			size = 32
		}
		enum := &ast.EnumType{Size: size}
		for _, v := range def.Values {
			enum.AddMember(v.Name, v.Value)
		}
		p.table.Add(enum)
		return enum, nil
	}

	isStrictInt := !isChar && !isBool && !isByte
	traits := ast.Traits{
		ElementSize:   size,
		IsSignedInt:   isStrictInt && !def.Unsigned,
		IsUnsignedInt: isStrictInt && def.Unsigned,
		IsText:        isChar,
		IsBool:        isBool,
		IsRaw:         isByte,
		IsScalar:      true,
	}
	kind, ok := ast.KindForTraits(traits)
	if !ok {
		return nil, errors.NewSchemaError(errors.ErrUnsupportedWidth,
			"can't decide what this int type is: bits=%d unsigned=%t presentation=%q",
			size, def.Unsigned, presentation)
	}
	prim := &ast.PrimitiveType{Kind: kind}
	p.table.Add(prim)
	return prim, nil
}

func (p *Parser) parseFloat(def *Definition) (ast.Type, error) {
	var kind ast.PrimitiveKind
	switch def.Model {
	case "binary32":
		kind = ast.KindF32
	case "binary64":
		kind = ast.KindF64
	case "binary128":
		kind = ast.KindF128
	default:
		return nil, errors.NewSchemaError(errors.ErrUnsupportedFloatModel,
			"can't decide what this float type is: model=%q", def.Model)
	}
	prim := &ast.PrimitiveType{Kind: kind}
	p.table.Add(prim)
	return prim, nil
}

func (p *Parser) parseString(def *Definition) (ast.Type, error) {
	kind := ast.KindS8
	if idl := def.Note.IDL.Type; idl == "wstring" || idl == "wchar" {
		kind = ast.KindS16
	}
	prim := &ast.PrimitiveType{Kind: kind}
	if def.Capacity != nil {
		limit := *def.Capacity
		prim.ElementCountLimit = &limit
	}
	p.table.Add(prim)
	return prim, nil
}

// parseSequence reads the element type from the definition's "type" entry.
// Without one, the producer's positional convention applies and the first
// entry of the table is the element type.
func (p *Parser) parseSequence(def *Definition) (ast.Type, error) {
	var base ast.Type
	if def.Type != nil {
		var err error
		base, err = p.ParseType(*def.Type)
		if err != nil {
			return nil, errors.Wrap(err, "sequence element")
		}
	} else {
		first, ok := p.table.First()
		if !ok {
			return nil, errors.NewSchemaError(errors.ErrMalformedITL, "sequence without an element type")
		}
		p.logger.Debugw("sequence element taken from the first table entry",
			logger.FieldType, ast.HeaderOf(first).Name.ITLName())
		base = first
	}
	baseID := ast.HeaderOf(base).ID

	if len(def.Size) > 0 {
		for _, dim := range def.Size {
			if dim <= 0 {
				return nil, errors.NewSchemaError(errors.ErrMalformedITL, "array dimension %d is not positive", dim)
			}
		}
		array := &ast.ArrayType{Base: baseID, Dimensions: append([]int(nil), def.Size...)}
		p.table.Add(array)
		return array, nil
	}

	seq := &ast.SequenceType{Base: baseID}
	if def.Capacity != nil {
		limit := *def.Capacity
		seq.MaxCount = &limit
	}
	p.table.Add(seq)
	return seq, nil
}

func (p *Parser) parseRecord(def *Definition) (ast.Type, error) {
	record := &ast.StructType{}
	for _, raw := range def.Fields {
		t, err := p.ParseType(raw.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", raw.Name)
		}
		// An anonymous sequence member borrows the name of its element type.
		if seq, ok := t.(*ast.SequenceType); ok && !raw.Type.IsRef() && !seq.Named() {
			if base := ast.HeaderOf(p.table.Node(seq.Base)); base.Named() {
				seq.SetName(base.Name)
			}
		}
		record.AddField(raw.Name, ast.HeaderOf(t).ID, raw.Optional)
	}
	p.table.Add(record)
	return record, nil
}

func (p *Parser) parseAlias(def *Definition) (ast.Type, error) {
	if def.Type == nil {
		return nil, errors.NewSchemaError(errors.ErrMalformedITL, "alias %q has no type", def.Name)
	}
	name, err := ast.ParseName(def.Name)
	if err != nil {
		return nil, errors.Wrap(err, "alias name")
	}
	t, err := p.ParseType(*def.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "alias %s", def.Name)
	}
	h := ast.HeaderOf(t)
	h.SetName(name)
	if !h.IsTopicType {
		h.IsTopicType = def.Note.IsDCPSDataType
	}
	return t, nil
}
