package middleware

import (
	"log/slog"
	"net/http"

	"genrelens/internal/delivery/api/response"
	deliverycontext "genrelens/internal/delivery/context"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	// Attempt to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("error_code", appErr.ErrorCode()),
				slog.String("details", appErr.Details()),
				slog.Any("error", err),
			)
		}
		// Only the user-facing message leaves the process
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	// Check if it is an Echo HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		_ = response.Error(c, httpErr.Code, message)

		return
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	attrs := []any{
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	}
	if stack := errors.StackTrace(err); stack != "" {
		attrs = append(attrs, slog.String("stack", stack))
	}
	logger.Error("Unhandled error", attrs...)

	_ = response.InternalServerError(c, domainerrors.ErrInternalError.Message())
}
