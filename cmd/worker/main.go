package main

import (
	"context"
	"log/slog"
	"os"

	"genrelens/config"
	"genrelens/internal/delivery"
	"genrelens/internal/delivery/worker"
	"genrelens/internal/delivery/worker/handler"
	logs "genrelens/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

// The worker receives classification events pushed by Pub/Sub.
func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			handler.NewPushHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start worker", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
