package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "genrelens/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(t *testing.T, err error, logs *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/classify", nil), rec)
	NewErrorMiddleware(slog.New(slog.NewJSONHandler(logs, nil))).HandleHTTPError(err, c)

	return rec
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
		logged bool
	}{
		{
			name:   "client app error",
			err:    errors.Wrap(domainerrors.ErrNoFileUploaded, "parse upload"),
			status: http.StatusBadRequest,
			body:   `{"error":"No file uploaded"}`,
		},
		{
			name:   "server app error hides details",
			err:    domainerrors.ErrClassificationFailed.WithDetails("dial tcp: refused"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Classification failed"}`,
			logged: true,
		},
		{
			name:   "echo error",
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			body:   `{"error":"Method Not Allowed"}`,
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Internal server error"}`,
			logged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := handleError(t, tt.err, &logs)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, tt.logged, logs.Len() > 0)
		})
	}
}

func TestHandleHTTPError_LogsStackForUnknownErrors(t *testing.T) {
	var logs bytes.Buffer
	handleError(t, errors.New("boom"), &logs)

	assert.Contains(t, logs.String(), `"stack"`)
	assert.Contains(t, logs.String(), "error_test.go")
}
