package worker

import (
	"context"
	"log/slog"
	"net/http"

	"genrelens/config"
	"genrelens/internal/delivery"
	"genrelens/internal/delivery/middleware"
	"genrelens/internal/delivery/worker/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// pushBodyLimit covers a 10MB Pub/Sub message once base64 encoded and wrapped.
const pushBodyLimit = "16M"

type workerServer struct {
	hostPort string
	logger   *slog.Logger
	echo     *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	PushHandler *handler.PushHandler
}

// NewServer creates the HTTP server that receives classification events pushed by Pub/Sub.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		hostPort: delivery.HostPort(params.Cfg),
		logger:   params.Logger,
		echo:     newEcho(params.Cfg, params.Logger, params.PushHandler),
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return delivery.Shutdown(ctx, srv.echo, srv.logger, "worker")
		},
	})

	return srv, nil
}

func newEcho(cfg *config.Config, logger *slog.Logger, push *handler.PushHandler) *echo.Echo {
	e := delivery.NewEcho(cfg)
	middleware.UseCommon(e, cfg, logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.POST("/push", push.HandlePush, echomiddleware.BodyLimit(pushBodyLimit))

	return e
}

// Serve blocks until the server is shut down.
func (s *workerServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting worker HTTP server", slog.String("host_port", s.hostPort))
	if err := s.echo.Start(s.hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}
