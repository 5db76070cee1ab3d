// Package codec validates text encoding names against a charset registry
// before any code is generated.
//
// Generated native code decodes strings through the Python codec named in
// the configuration, so a name is valid exactly when Python's codecs.lookup
// accepts it. The IANA index supplies the canonical name and a Go
// implementation where one exists.
package codec

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/teranos/itl2py/errors"
)

// Default is the encoding used when none is configured.
const Default = "utf_8"

// Codec is a validated encoding.
type Codec struct {
	// Name is the name as configured.
	Name string
	// Python is the codec module name Python resolves Name to. It is what
	// the generated code passes to PyUnicode_Decode.
	Python string
	// Canonical is the IANA preferred name, or the upper-cased Python name
	// for codecs the IANA registry does not know.
	Canonical string
	// Encoding is the Go implementation; nil when there is none.
	Encoding encoding.Encoding
}

// normalize follows encodings.normalize_encoding: lower case, every run of
// characters other than letters, digits and dots becomes one underscore.
func normalize(name string) string {
	var sb strings.Builder
	pending := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' {
			if pending && sb.Len() > 0 {
				sb.WriteByte('_')
			}
			pending = false
			sb.WriteRune(r)
			continue
		}
		pending = true
	}
	return sb.String()
}

// module resolves name to a Python codec module the way codecs.lookup does.
func module(name string) (string, bool) {
	norm := normalize(name)
	if m, ok := aliasIndex[norm]; ok {
		return m, true
	}
	m, ok := aliasIndex[strings.ReplaceAll(norm, ".", "_")]
	return m, ok
}

// Lookup validates name against Python's codec registry. Unknown names are
// configuration errors.
func Lookup(name string) (Codec, error) {
	if strings.TrimSpace(name) == "" {
		return Codec{}, errors.NewConfigError("empty encoding name")
	}

	mod, ok := module(name)
	if !ok {
		return Codec{}, errors.WithHint(
			errors.NewConfigError("%q is not a Python text codec", name),
			"use a Python codec name such as utf_8, latin_1 or ascii",
		)
	}

	c := Codec{Name: name, Python: mod, Canonical: strings.ToUpper(mod)}
	if iana := registry[mod].iana; iana != "" {
		if enc, err := ianaindex.IANA.Encoding(iana); err == nil && enc != nil {
			c.Encoding = enc
			c.Canonical = canonicalName(enc, iana)
		}
	}
	return c, nil
}

// Validate reports whether name is a known encoding.
func Validate(name string) error {
	_, err := Lookup(name)
	return err
}

func canonicalName(enc encoding.Encoding, fallback string) string {
	if enc == nil {
		return strings.ToUpper(fallback)
	}
	if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
		return n
	}
	if n, err := ianaindex.IANA.Name(enc); err == nil && n != "" {
		return n
	}
	return strings.ToUpper(fallback)
}
