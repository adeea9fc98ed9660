package main

import (
	"context"
	"log/slog"
	"os"

	"genrelens/config"
	"genrelens/internal/delivery"
	"genrelens/internal/delivery/api"
	"genrelens/internal/delivery/api/middleware"
	"genrelens/internal/delivery/api/router/handler"
	"genrelens/internal/infra/auth"
	"genrelens/internal/infra/auth/google"
	"genrelens/internal/infra/classifier"
	logs "genrelens/internal/infra/log"
	"genrelens/internal/infra/oauthstate"
	"genrelens/internal/infra/persistence"
	"genrelens/internal/infra/pubsub"
	"genrelens/internal/infra/upload"
	"genrelens/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		persistence.Module,
		oauthstate.Module,
		pubsub.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			google.NewOAuthService,
			upload.NewLocalStorage,
			classifier.NewHTTPClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewClassifyService,
			impl.NewHistoryService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewClassifyHandler,
			handler.NewHistoryHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
