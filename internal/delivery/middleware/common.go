package middleware

import (
	"log/slog"

	"genrelens/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// UseCommon installs the middleware every server shares, outermost first:
// panic recovery, request ID with a request-scoped logger, then the access log.
func UseCommon(e *echo.Echo, cfg *config.Config, logger *slog.Logger) {
	e.Use(echomiddleware.Recover())
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)
}
