package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newEchoContext() echo.Context {
	return echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Equal(t, "req-1", GetRequestIDFromContext(WithRequestID(ctx, "req-1")))

	c := newEchoContext()
	generated := GetRequestID(c)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	SetRequestID(c, "req-2")
	assert.Equal(t, "req-2", GetRequestID(c))
}

func TestLogger(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "req-1"))

	ctx := context.Background()
	assert.Nil(t, GetLogger(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(ctx, scoped), fallback))
}

func TestUserID(t *testing.T) {
	c := newEchoContext()
	_, ok := GetUserID(c)
	assert.False(t, ok)

	SetUserID(c, uuid.Nil)
	_, ok = GetUserID(c)
	assert.False(t, ok)

	id := uuid.New()
	SetUserID(c, id)
	got, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestKeysDoNotCollide(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Nil(t, GetLogger(ctx))

	c := newEchoContext()
	SetRequestID(c, "req-2")
	_, ok := GetUserID(c)
	assert.False(t, ok)
}
