// Package errors provides error handling for labelcheck.
//
// It re-exports github.com/cockroachdb/errors so every package wraps,
// annotates and inspects errors the same way:
//
//	if err := os.MkdirAll(dir, 0755); err != nil {
//	    return errors.Wrapf(err, "create output directory %s", dir)
//	}
//
// User-facing remediation goes into hints:
//
//	return errors.WithHint(err, "pass paths or put files under runs/*.txt")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping.
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details.
var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
	GetAllHints  = crdb.GetAllHints
)

// Inspection.
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// ErrInvalidInput is the root of every rejected-input error in labelcheck.
// Wrap it to add context while keeping errors.Is checks working.
var ErrInvalidInput = New("invalid input")

// IsInvalidInput reports whether err is or wraps ErrInvalidInput.
func IsInvalidInput(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// Invalidf creates an ErrInvalidInput error with a formatted message.
func Invalidf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

// Recovered converts a recovered panic value into an error.
func Recovered(v interface{}) error {
	if err, ok := v.(error); ok {
		return Wrap(err, "recovered panic")
	}

	return Newf("recovered panic: %v", v)
}
