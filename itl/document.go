package itl

import (
	"bytes"

	"github.com/goccy/go-json"

	"github.com/teranos/itl2py/errors"
)

// Document is one ITL file.
type Document struct {
	Version string    `json:"version,omitempty"`
	Types   []RawType `json:"types"`
}

// RawType is either a reference to an already defined type by its
// canonical name, or an inline definition.
type RawType struct {
	Ref string
	Def *Definition
}

// IsRef reports whether the raw type is a name reference.
func (r RawType) IsRef() bool { return r.Def == nil }

func (r *RawType) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.NewSchemaError(errors.ErrMalformedITL, "empty type description")
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &r.Ref)
	case '{':
		r.Def = &Definition{}
		return json.Unmarshal(trimmed, r.Def)
	default:
		return errors.NewSchemaError(errors.ErrMalformedITL,
			"type description must be a string or an object, got %s", truncate(trimmed))
	}
}

func (r RawType) MarshalJSON() ([]byte, error) {
	if r.Def != nil {
		return json.Marshal(r.Def)
	}
	return json.Marshal(r.Ref)
}

// Definition is an inline type description discriminated by Kind.
type Definition struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
	Note Note   `json:"note"`

	// int
	Unsigned    bool       `json:"unsigned,omitempty"`
	Bits        *int       `json:"bits,omitempty"`
	Constrained bool       `json:"constrained,omitempty"`
	Values      EnumValues `json:"values,omitempty"`

	// float
	Model string `json:"model,omitempty"`

	// string, sequence
	Capacity *int       `json:"capacity,omitempty"`
	Size     Dimensions `json:"size,omitempty"`
	Type     *RawType   `json:"type,omitempty"`

	// record
	Fields []RawField `json:"fields,omitempty"`
}

// Note carries the producer annotations the parser understands.
type Note struct {
	Presentation struct {
		Type string `json:"type,omitempty"`
	} `json:"presentation"`
	IDL struct {
		Type string `json:"type,omitempty"`
	} `json:"idl"`
	IsDCPSDataType bool `json:"is_dcps_data_type,omitempty"`
}

// RawField is one member of a record.
type RawField struct {
	Name     string  `json:"name"`
	Type     RawType `json:"type"`
	Optional bool    `json:"optional,omitempty"`
}

// EnumValue is one enumerator in declaration order.
type EnumValue struct {
	Name  string
	Value int64
}

// EnumValues keeps the key order of the "values" object.
type EnumValues []EnumValue

func (v *EnumValues) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "enum values")
	}
	if tok == nil {
		*v = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.NewSchemaError(errors.ErrMalformedITL, "enum values must be an object")
	}

	var out EnumValues
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "enum values")
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.NewSchemaError(errors.ErrMalformedITL, "enum member name must be a string")
		}
		valueTok, err := dec.Token()
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "enum member %q", key), errors.ErrMalformedITL)
		}
		value, err := enumValue(valueTok)
		if err != nil {
			return errors.Wrapf(err, "enum member %q", key)
		}
		out = append(out, EnumValue{Name: key, Value: value})
	}
	*v = out
	return nil
}

func enumValue(tok json.Token) (int64, error) {
	switch n := tok.(type) {
	case json.Number:
		value, err := n.Int64()
		if err != nil {
			return 0, errors.Mark(err, errors.ErrMalformedITL)
		}
		return value, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, errors.NewSchemaError(errors.ErrMalformedITL, "value %v is not an integer", n)
		}
		return int64(n), nil
	default:
		return 0, errors.NewSchemaError(errors.ErrMalformedITL, "value %v is not a number", tok)
	}
}

func (v EnumValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, member := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(member.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(member.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dimensions accepts a single size or a list of sizes.
type Dimensions []int

func (d *Dimensions) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*d = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var dims []int
		if err := json.Unmarshal(trimmed, &dims); err != nil {
			return errors.Mark(errors.Wrap(err, "array size"), errors.ErrMalformedITL)
		}
		*d = dims
		return nil
	}
	var single int
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return errors.Mark(errors.Wrap(err, "array size"), errors.ErrMalformedITL)
	}
	*d = Dimensions{single}
	return nil
}

// Decode parses an ITL document. A missing "types" key is malformed.
func Decode(data []byte) (*Document, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode ITL document"), errors.ErrMalformedITL)
	}
	if _, ok := probe["types"]; !ok {
		return nil, errors.WithHint(
			errors.NewSchemaError(errors.ErrMalformedITL, "ITL document has no \"types\" key"),
			"ITL files are produced by opendds_idl --itl",
		)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode ITL types"), errors.ErrMalformedITL)
	}
	return &doc, nil
}

func truncate(b []byte) string {
	const limit = 40
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
