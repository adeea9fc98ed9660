package delivery

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"genrelens/config"
	"genrelens/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// NewEcho returns a bannerless echo instance carrying the configured server timeouts.
func NewEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	timeouts := cfg.HTTP.Timeouts
	e.Server.ReadTimeout = timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = timeouts.WriteTimeout
	e.Server.IdleTimeout = timeouts.IdleTimeout

	return e
}

// HostPort is the listen address for the configured port on every interface.
func HostPort(cfg *config.Config) string {
	return net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.HTTP.Port))
}

// Shutdown drains in-flight requests, giving up after lifecycle.DefaultTimeout.
func Shutdown(ctx context.Context, e *echo.Echo, logger *slog.Logger, name string) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server", slog.String("server", name))
	if err := e.Shutdown(shutdownCtx); err != nil {
		return errors.Wrapf(err, "%s server shutdown", name)
	}

	return nil
}
