// Package context carries request-scoped values (request ID, logger, caller) between
// the echo pipeline and the layers below it.
package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header name for request ID.
const HeaderXRequestID = "X-Request-Id"

type contextKey int

const (
	requestIDKey contextKey = iota
	loggerKey
)

// echo.Context keys
const (
	echoKeyRequestID = "request_id"
	echoKeyUserID    = "user_id"
)

func valueOf[T any](ctx context.Context, key contextKey) (T, bool) {
	v, ok := ctx.Value(key).(T)

	return v, ok
}

// GetRequestID returns the ID stored on the echo context, or a fresh UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID stores the request ID on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext returns the request ID, or "" outside a request.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := valueOf[string](ctx, requestIDKey)

	return id
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
