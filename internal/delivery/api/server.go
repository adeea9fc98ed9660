package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"genrelens/config"
	"genrelens/internal/delivery"
	apimiddleware "genrelens/internal/delivery/api/middleware"
	"genrelens/internal/delivery/api/router"
	"genrelens/internal/delivery/api/validator"
	deliverycontext "genrelens/internal/delivery/context"
	"genrelens/internal/delivery/middleware"
	"genrelens/internal/domain/constants"
	"genrelens/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	hostPort    string
	idleTimeout time.Duration
	logger      *slog.Logger
	server      *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

// NewServer builds the public API server; it starts serving when Serve is called.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := delivery.NewEcho(params.Cfg)
	middleware.UseCommon(echoServer, params.Cfg, params.Logger)

	// Browsers call the API from the configured frontends and read the pipeline headers
	corsConfig := echomiddleware.DefaultCORSConfig
	if len(params.Cfg.HTTP.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = params.Cfg.HTTP.AllowOrigins
	}
	corsConfig.ExposeHeaders = []string{deliverycontext.HeaderXRequestID, constants.HeaderHistoryStatus}
	echoServer.Use(echomiddleware.CORSWithConfig(corsConfig))

	// Oversized uploads must answer 400 "File too large", which only the receiver reports
	if params.Cfg.HTTP.MaxRequestBodySize != "" {
		echoServer.Use(echomiddleware.BodyLimitWithConfig(echomiddleware.BodyLimitConfig{
			Skipper: func(c echo.Context) bool {
				return c.Path() == router.ClassifyPath
			},
			Limit: params.Cfg.HTTP.MaxRequestBodySize,
		}))
	}

	echoServer.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(params.Logger).HandleHTTPError
	echoServer.Validator = validator.New()
	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	srv := &apiServer{
		hostPort:    delivery.HostPort(params.Cfg),
		idleTimeout: params.Cfg.HTTP.Timeouts.IdleTimeout,
		logger:      params.Logger,
		server:      echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return delivery.Shutdown(ctx, srv.server, srv.logger, "api")
		},
	})

	return srv, nil
}

// Serve speaks HTTP/1.1 and cleartext HTTP/2 on the same port until shutdown.
func (s *apiServer) Serve(ctx context.Context) error {
	s.logger.Info("Starting API HTTP server", slog.String("host_port", s.hostPort))

	err := s.server.StartH2CServer(s.hostPort, &http2.Server{IdleTimeout: s.idleTimeout})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}
