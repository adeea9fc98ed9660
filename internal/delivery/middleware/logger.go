package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"genrelens/config"
	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/domain/constants"

	"github.com/labstack/echo/v4"
)

const healthPath = "/health"

// LoggerMiddleware writes one access log line per request.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle logs the request once the handler chain has finished.
// Successful health probes are only logged in debug mode.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		if err != nil {
			// Let the error handler write the response first so the logged status is final
			c.Error(err)
		}

		if m.debug || c.Request().URL.Path != healthPath || c.Response().Status != http.StatusOK {
			m.logRequest(c, start, err)
		}

		return nil
	}
}

func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Int64("bytes_in", req.ContentLength),
		slog.Int64("bytes_out", res.Size),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
	}

	if status := res.Header().Get(constants.HeaderHistoryStatus); status != "" {
		attrs = append(attrs, slog.String("history_status", status))
	}

	// The query is never logged: the OAuth callback carries the authorization code in it
	if m.debug {
		attrs = append(attrs, slog.String("user_agent", req.UserAgent()))
	}

	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case res.Status >= http.StatusInternalServerError:
		level = slog.LevelError
	case res.Status >= http.StatusBadRequest:
		level = slog.LevelWarn
	}

	logger := deliverycontext.GetLoggerOrDefault(req.Context(), m.logger)
	logger.LogAttrs(req.Context(), level, "HTTP Request", attrs...)
}
