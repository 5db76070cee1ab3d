package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrUnknownTypeReference, "field %q", "where")

	assert.Equal(t, `field "where": unknown type reference`, wrapped.Error())
	assert.True(t, Is(wrapped, ErrUnknownTypeReference))
}

func TestWithHint(t *testing.T) {
	err := WithHint(New("error"), "pass --package-name")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "pass --package-name", hints[0])
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("invalid codec %q", "utf_99")

	assert.Equal(t, `invalid codec "utf_99"`, err.Error())
	assert.True(t, IsConfigError(err))
	assert.False(t, IsSchemaError(err))
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError(ErrUnsupportedWidth, "int with %d bits", 12)

	assert.Equal(t, "int with 12 bits", err.Error())
	assert.True(t, Is(err, ErrUnsupportedWidth))
	assert.True(t, IsSchemaError(err))
	assert.False(t, IsConfigError(err))
}

func TestIsSchemaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unknown reference", Wrap(ErrUnknownTypeReference, "x"), true},
		{"unsupported kind", ErrUnsupportedKind, true},
		{"float model", Wrap(ErrUnsupportedFloatModel, "binary16"), true},
		{"malformed", ErrMalformedITL, true},
		{"not implemented", Wrap(ErrNotImplemented, "union"), true},
		{"config", ErrInvalidConfig, false},
		{"plain", New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSchemaError(tt.err))
		})
	}
}
