// Package errors defines the application errors that cross the HTTP boundary.
// Only Message leaves the process; Details is for logs.
package errors

import (
	"genrelens/internal/errors"
)

// AppError is an error that knows how it should be answered over HTTP.
type AppError interface {
	error
	HTTPCode() int
	ErrorCode() string
	Message() string
	Details() string
}

// BaseError is the plain AppError used for every catalogued failure.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// WrapMessage wraps the error with a stack and a context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// WithDetails returns a copy carrying log-only details; it still matches e with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	detailed := *e
	detailed.details = details

	return &detailed
}

// Is matches any BaseError carrying the same error code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}
