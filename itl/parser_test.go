package itl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/itl2py/ast"
	"github.com/teranos/itl2py/errors"
)

func intDef(bits *int, unsigned bool) *Definition {
	return &Definition{Kind: KindInt, Bits: bits, Unsigned: unsigned}
}

func ptr(i int) *int { return &i }

func TestParseIntGrid(t *testing.T) {
	tests := []struct {
		bits     int
		unsigned bool
		want     ast.PrimitiveKind
	}{
		{8, false, ast.KindI8},
		{8, true, ast.KindU8},
		{16, false, ast.KindI16},
		{16, true, ast.KindU16},
		{32, false, ast.KindI32},
		{32, true, ast.KindU32},
		{64, false, ast.KindI64},
		{64, true, ast.KindU64},
		{128, false, ast.KindI128},
		{128, true, ast.KindU128},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("bits=%d unsigned=%t", tt.bits, tt.unsigned), func(t *testing.T) {
			p := NewParser(ast.NewTable())
			got, err := p.ParseType(RawType{Def: intDef(ptr(tt.bits), tt.unsigned)})
			require.NoError(t, err)

			prim, ok := got.(*ast.PrimitiveType)
			require.True(t, ok)
			assert.Equal(t, tt.want, prim.Kind)

			traits := prim.Kind.Traits()
			assert.Equal(t, tt.bits, traits.ElementSize)
			assert.Equal(t, tt.unsigned, traits.IsUnsignedInt)
			assert.Equal(t, !tt.unsigned, traits.IsSignedInt)
		})
	}
}

func TestParseIntUnsupportedWidth(t *testing.T) {
	for _, bits := range []*int{nil, ptr(12), ptr(24), ptr(256)} {
		name := "nil"
		if bits != nil {
			name = fmt.Sprint(*bits)
		}
		t.Run(name, func(t *testing.T) {
			p := NewParser(ast.NewTable())
			_, err := p.ParseType(RawType{Def: intDef(bits, false)})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnsupportedWidth))
		})
	}
}

func TestParseIntPresentations(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		want ast.PrimitiveKind
	}{
		{
			name: "char",
			def:  &Definition{Kind: KindInt, Bits: ptr(8), Note: noteWith("char", "")},
			want: ast.KindC8,
		},
		{
			name: "char without bits",
			def:  &Definition{Kind: KindInt, Note: noteWith("char", "")},
			want: ast.KindC8,
		},
		{
			name: "wchar without bits",
			def:  &Definition{Kind: KindInt, Note: noteWith("char", "wchar")},
			want: ast.KindC16,
		},
		{
			name: "wchar idl type only",
			def:  &Definition{Kind: KindInt, Note: noteWith("", "wchar")},
			want: ast.KindC16,
		},
		{
			name: "bool forces 8 bits",
			def:  &Definition{Kind: KindInt, Bits: ptr(32), Note: noteWith("bool", "")},
			want: ast.KindBool,
		},
		{
			name: "octet",
			def:  &Definition{Kind: KindInt, Bits: ptr(8), Unsigned: true, Note: noteWith("", "octet")},
			want: ast.KindByte,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(ast.NewTable())
			got, err := p.ParseType(RawType{Def: tt.def})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.(*ast.PrimitiveType).Kind)
		})
	}
}

func noteWith(presentation, idl string) Note {
	var n Note
	n.Presentation.Type = presentation
	n.IDL.Type = idl
	return n
}

func TestParseEnum(t *testing.T) {
	p := NewParser(ast.NewTable())
	doc, err := Decode([]byte(`{"types": [{
		"kind": "alias", "name": "IDL:M/Color:1.0",
		"type": {"kind": "int", "bits": 32, "unsigned": true, "constrained": true,
			"values": {"zeta": 0, "alpha": 1, "mid": 5}}}]}`))
	require.NoError(t, err)
	require.NoError(t, p.ParseDocument(doc))

	got, ok := p.Table().Lookup("IDL:M/Color:1.0")
	require.True(t, ok)
	enum, ok := got.(*ast.EnumType)
	require.True(t, ok)

	assert.Equal(t, 32, enum.Size)
	assert.Equal(t, []ast.EnumMember{{Name: "zeta", Value: 0}, {Name: "alpha", Value: 1}, {Name: "mid", Value: 5}}, enum.Members)
	assert.Equal(t, "zeta", enum.DefaultMember())
}

func TestParseConstrainedWithoutValuesIsInt(t *testing.T) {
	p := NewParser(ast.NewTable())
	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindInt, Bits: ptr(16), Constrained: true}})
	require.NoError(t, err)
	assert.Equal(t, ast.KindI16, got.(*ast.PrimitiveType).Kind)
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		model string
		want  ast.PrimitiveKind
	}{
		{"binary32", ast.KindF32},
		{"binary64", ast.KindF64},
		{"binary128", ast.KindF128},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			p := NewParser(ast.NewTable())
			got, err := p.ParseType(RawType{Def: &Definition{Kind: KindFloat, Model: tt.model}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.(*ast.PrimitiveType).Kind)
		})
	}

	p := NewParser(ast.NewTable())
	_, err := p.ParseType(RawType{Def: &Definition{Kind: KindFloat, Model: "decimal64"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedFloatModel))
}

func TestParseString(t *testing.T) {
	p := NewParser(ast.NewTable())

	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindString}})
	require.NoError(t, err)
	narrow := got.(*ast.PrimitiveType)
	assert.Equal(t, ast.KindS8, narrow.Kind)
	assert.Nil(t, narrow.ElementCountLimit)

	got, err = p.ParseType(RawType{Def: &Definition{Kind: KindString, Capacity: ptr(16), Note: noteWith("", "wstring")}})
	require.NoError(t, err)
	wide := got.(*ast.PrimitiveType)
	assert.Equal(t, ast.KindS16, wide.Kind)
	require.NotNil(t, wide.ElementCountLimit)
	assert.Equal(t, 16, *wide.ElementCountLimit)
}

func TestParseSequence(t *testing.T) {
	p := NewParser(ast.NewTable())
	elem := RawType{Def: intDef(ptr(8), true)}

	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindSequence, Capacity: ptr(5), Type: &elem}})
	require.NoError(t, err)
	seq, ok := got.(*ast.SequenceType)
	require.True(t, ok)
	require.NotNil(t, seq.MaxCount)
	assert.Equal(t, 5, *seq.MaxCount)
	assert.Equal(t, ast.KindU8, p.Table().Node(seq.Base).(*ast.PrimitiveType).Kind)

	got, err = p.ParseType(RawType{Def: &Definition{Kind: KindSequence, Type: &elem}})
	require.NoError(t, err)
	assert.False(t, got.(*ast.SequenceType).Bounded())
}

func TestParseSequenceWithSizeIsArray(t *testing.T) {
	p := NewParser(ast.NewTable())
	elem := RawType{Def: intDef(ptr(32), false)}

	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindSequence, Size: Dimensions{2, 3}, Type: &elem}})
	require.NoError(t, err)
	array, ok := got.(*ast.ArrayType)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3}, array.Dimensions)

	_, err = p.ParseType(RawType{Def: &Definition{Kind: KindSequence, Size: Dimensions{0}, Type: &elem}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedITL))
}

func TestParseSequenceFallsBackToFirstEntry(t *testing.T) {
	p := NewParser(ast.NewTable())

	_, err := p.ParseType(RawType{Def: &Definition{Kind: KindSequence}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedITL))

	point := &ast.StructType{Node: ast.Node{Name: ast.NewName("M", "Point")}}
	require.True(t, p.Table().Insert(point))

	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindSequence}})
	require.NoError(t, err)
	assert.Equal(t, point.ID, got.(*ast.SequenceType).Base)
}

func TestParseRecord(t *testing.T) {
	p := NewParser(ast.NewTable())
	point := &ast.StructType{Node: ast.Node{Name: ast.NewName("M", "Point")}}
	require.True(t, p.Table().Insert(point))

	pointRef := RawType{Ref: "IDL:M/Point:1.0"}
	got, err := p.ParseType(RawType{Def: &Definition{Kind: KindRecord, Fields: []RawField{
		{Name: "value", Type: RawType{Def: intDef(ptr(32), false)}},
		{Name: "origin", Type: pointRef},
		{Name: "path", Type: RawType{Def: &Definition{Kind: KindSequence, Type: &pointRef}}},
		{Name: "note", Type: RawType{Def: &Definition{Kind: KindString}}, Optional: true},
	}}})
	require.NoError(t, err)

	record := got.(*ast.StructType)
	require.Len(t, record.Fields, 4)
	assert.Equal(t, []string{"value", "origin", "path", "note"}, fieldNames(record))
	assert.Equal(t, point.ID, record.Fields[1].Type)
	assert.True(t, record.Fields[3].Optional)

	path := p.Table().Node(record.Fields[2].Type).(*ast.SequenceType)
	assert.Equal(t, []string{"M", "Point"}, path.Name.Parts, "anonymous member sequences borrow the element name")
	assert.Equal(t, 1, p.Table().Len(), "member types are never indexed")
}

func fieldNames(s *ast.StructType) []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

func TestParseAlias(t *testing.T) {
	p := NewParser(ast.NewTable())
	def := &Definition{
		Kind: KindAlias,
		Name: "IDL:Test/Reading:1.0",
		Type: &RawType{Def: &Definition{Kind: KindRecord}},
	}
	def.Note.IsDCPSDataType = true

	got, err := p.ParseType(RawType{Def: def})
	require.NoError(t, err)
	h := ast.HeaderOf(got)
	assert.Equal(t, []string{"Test", "Reading"}, h.Name.Parts)
	assert.True(t, h.IsTopicType)

	// A second alias without the note keeps the topic flag.
	again := &Definition{Kind: KindAlias, Name: "IDL:Test/Renamed:1.0", Type: &RawType{Ref: "IDL:Test/Reading:1.0"}}
	require.True(t, p.Table().Insert(got))
	renamed, err := p.ParseType(RawType{Def: again})
	require.NoError(t, err)
	assert.Same(t, got, renamed)
	assert.True(t, ast.HeaderOf(renamed).IsTopicType)
	assert.Equal(t, "Renamed", ast.HeaderOf(renamed).LocalName())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawType
		sentinel error
	}{
		{"unknown reference", RawType{Ref: "IDL:Nope:1.0"}, errors.ErrUnknownTypeReference},
		{"union", RawType{Def: &Definition{Kind: KindUnion}}, errors.ErrNotImplemented},
		{"fixed", RawType{Def: &Definition{Kind: KindFixed}}, errors.ErrNotImplemented},
		{"unknown kind", RawType{Def: &Definition{Kind: "bitmask"}}, errors.ErrUnsupportedKind},
		{"alias without type", RawType{Def: &Definition{Kind: KindAlias, Name: "IDL:A:1.0"}}, errors.ErrMalformedITL},
		{"alias with bad name", RawType{Def: &Definition{Kind: KindAlias, Name: "not a name", Type: &RawType{Def: &Definition{Kind: KindString}}}}, errors.ErrMalformedITL},
		{
			"record field with unknown reference",
			RawType{Def: &Definition{Kind: KindRecord, Fields: []RawField{{Name: "where", Type: RawType{Ref: "IDL:Gone:1.0"}}}}},
			errors.ErrUnknownTypeReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(ast.NewTable())
			_, err := p.ParseType(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.True(t, errors.IsSchemaError(err))
		})
	}
}

func TestParseDocumentFirstDefinitionWins(t *testing.T) {
	data := []byte(`{"types": [
		{"kind": "alias", "name": "IDL:M/S:1.0", "type": {"kind": "record", "fields": [
			{"name": "a", "type": {"kind": "int", "bits": 32}}]}}
	]}`)
	doc, err := Decode(data)
	require.NoError(t, err)

	p := NewParser(ast.NewTable())
	require.NoError(t, p.ParseDocument(doc))
	first, ok := p.Table().Lookup("IDL:M/S:1.0")
	require.True(t, ok)
	names := p.Table().Names()

	require.NoError(t, p.ParseDocument(doc))
	second, ok := p.Table().Lookup("IDL:M/S:1.0")
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, names, p.Table().Names())
	assert.Len(t, second.(*ast.StructType).Fields, 1)
}
