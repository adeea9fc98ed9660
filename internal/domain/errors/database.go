package errors

import (
	"net/http"

	"genrelens/internal/errors"
)

//nolint:gochecknoglobals
var errDatabaseExecute = define(http.StatusInternalServerError, "DATABASE_EXECUTE_FAILED", "Internal server error")

// DatabaseExecuteError is a failed identity store call; the driver error stays reachable through Unwrap.
type DatabaseExecuteError struct {
	*BaseError
	err error
}

// NewDatabaseExecuteError describes what the store was doing when err happened.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		BaseError: errDatabaseExecute.WithDetails(details),
		err:       err,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
