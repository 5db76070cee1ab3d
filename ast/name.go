package ast

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/teranos/itl2py/errors"
)

// DefaultVersion is the repository id version suffix the IDL compiler emits.
const DefaultVersion = "1.0"

// nolint:gochecknoglobals
var (
	nameLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Version", Pattern: `[0-9]+\.[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Scope", Pattern: `::`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	nameParser = participle.MustBuild[qualifiedName](
		participle.Lexer(nameLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)

// qualifiedName accepts both the ITL repository id ("IDL:Test/Reading:1.0")
// and the IDL scoped form ("::Test::Reading").
type qualifiedName struct {
	Repository *repositoryID `parser:"  @@"`
	Scoped     *scopedName   `parser:"| @@"`
}

type repositoryID struct {
	Parts   []string `parser:"'IDL' Colon @Ident ( Slash @Ident )*"`
	Version string   `parser:"Colon @Version"`
}

type scopedName struct {
	Parts []string `parser:"Scope? @Ident ( Scope @Ident )*"`
}

// Name is a qualified identifier stored as its module path segments.
// The zero Name has no parts and names only the root module.
type Name struct {
	Parts   []string
	version string
}

// NewName builds a Name from path segments.
func NewName(parts ...string) Name {
	return Name{Parts: append([]string(nil), parts...)}
}

// ParseName parses a repository id or a scoped name.
func ParseName(s string) (Name, error) {
	parsed, err := nameParser.ParseString("", s)
	if err != nil {
		return Name{}, errors.Mark(errors.Wrapf(err, "invalid qualified name %q", s), errors.ErrMalformedITL)
	}
	if parsed.Repository != nil {
		name := NewName(parsed.Repository.Parts...)
		if parsed.Repository.Version != DefaultVersion {
			name.version = parsed.Repository.Version
		}
		return name, nil
	}
	return NewName(parsed.Scoped.Parts...), nil
}

// MustParseName is ParseName for names known to be valid.
func MustParseName(s string) Name {
	name, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return name
}

// ITLName returns the canonical repository id, e.g. "IDL:Test/Reading:1.0".
func (n Name) ITLName() string {
	version := n.version
	if version == "" {
		version = DefaultVersion
	}
	return "IDL:" + strings.Join(n.Parts, "/") + ":" + version
}

// Join joins the segments with sep.
func (n Name) Join(sep string) string {
	return strings.Join(n.Parts, sep)
}

// Scoped returns the fully scoped C++ spelling, e.g. "::Test::Reading".
func (n Name) Scoped() string {
	return "::" + n.Join("::")
}

// Local returns the last segment.
func (n Name) Local() string {
	if len(n.Parts) == 0 {
		return ""
	}
	return n.Parts[len(n.Parts)-1]
}

// Parent returns all segments but the last.
func (n Name) Parent() Name {
	if len(n.Parts) == 0 {
		return Name{}
	}
	return NewName(n.Parts[:len(n.Parts)-1]...)
}

// IsZero reports whether the name has no segments.
func (n Name) IsZero() bool {
	return len(n.Parts) == 0
}

// Equal reports whether both names have the same segments.
func (n Name) Equal(other Name) bool {
	if len(n.Parts) != len(other.Parts) {
		return false
	}
	for i := range n.Parts {
		if n.Parts[i] != other.Parts[i] {
			return false
		}
	}
	return true
}

func (n Name) String() string {
	if n.IsZero() {
		return "::"
	}
	return n.Scoped()
}
