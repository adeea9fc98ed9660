// Package errors is the error toolkit shared by the infra layer: standard
// library matching plus pkg/errors wrapping, so wrapped errors carry a stack.
package errors

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

var (
	New = stderrors.New
	Is  = stderrors.Is
	As  = stderrors.As
)

// Wrap annotates err with a message and the caller's stack; nil stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records the caller's stack on err without changing its message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Errorf formats a new error that carries the caller's stack.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// StackTrace renders the deepest stack recorded in err's chain, or "" when none was recorded.
func StackTrace(err error) string {
	var deepest stackTracer
	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			deepest = tracer
		}
		err = stderrors.Unwrap(err)
	}
	if deepest == nil {
		return ""
	}

	return fmt.Sprintf("%+v", deepest.StackTrace())
}
