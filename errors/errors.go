// Package errors provides error handling for itl2py.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints attached to fatal errors
//
// Usage:
//
//	// Wrap with context
//	if err := parse(); err != nil {
//	    return errors.Wrapf(err, "failed to parse %s", path)
//	}
//
//	// Mark as a schema resolution failure
//	return errors.Wrapf(errors.ErrUnknownTypeReference, "%q", name)
//
//	// Check errors
//	if errors.IsSchemaError(err) {
//	    // abort the run
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Configuration errors. Reported before any generation work starts.
var (
	// ErrInvalidConfig indicates a bad encoding name, an ambiguous package
	// name or another unusable setting
	ErrInvalidConfig = New("invalid configuration")
)

// Schema resolution errors. Any of these aborts the whole run: the ITL is
// machine generated, so they point at a producer bug or a schema feature
// the generator does not know about yet.
var (
	// ErrUnknownTypeReference indicates a type reference string that is not in the type table
	ErrUnknownTypeReference = New("unknown type reference")

	// ErrUnsupportedKind indicates an unrecognized "kind" discriminator
	ErrUnsupportedKind = New("unsupported type kind")

	// ErrUnsupportedWidth indicates an integer "bits" value that maps to no primitive
	ErrUnsupportedWidth = New("unsupported integer width")

	// ErrUnsupportedFloatModel indicates a float "model" that maps to no primitive
	ErrUnsupportedFloatModel = New("unsupported float model")

	// ErrMalformedITL indicates a document or type description with the wrong shape
	ErrMalformedITL = New("malformed ITL")

	// ErrNotImplemented indicates a recognized kind (union, fixed) that is deliberately unsupported
	ErrNotImplemented = New("not implemented")
)

// IsConfigError checks if an error is or wraps ErrInvalidConfig
func IsConfigError(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

// IsSchemaError checks if an error is or wraps any schema resolution sentinel
func IsSchemaError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnknownTypeReference,
		ErrUnsupportedKind,
		ErrUnsupportedWidth,
		ErrUnsupportedFloatModel,
		ErrMalformedITL,
		ErrNotImplemented,
	)
}

// NewConfigError creates an invalid-configuration error with a formatted message
func NewConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}

// NewSchemaError marks a formatted message with one of the schema sentinels
func NewSchemaError(sentinel error, format string, args ...interface{}) error {
	return Mark(Newf(format, args...), sentinel)
}
