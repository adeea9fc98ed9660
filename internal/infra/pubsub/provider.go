package pubsub

import (
	"context"
	"log/slog"

	"genrelens/config"
	"genrelens/internal/domain/constants"
	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops events when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishClassificationEvent(ctx context.Context, event *service.ClassificationEvent) error {
	p.logger.Debug("[NoopPubSub] Classification event dropped",
		slog.String("request_id", event.RequestID),
		slog.String("history_status", event.HistoryStatus),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewEventPublisher picks the publisher named by pubsub.provider; an empty provider disables events.
// The publisher is flushed on stop, bounded by the stop context.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		params.Logger.Info("Classification events disabled")

		return &noopPublisher{logger: params.Logger}, nil
	}

	publisher, err := newPublisher(params.Ctx, cfg, params.Logger)
	if err != nil {
		return nil, err
	}
	params.Logger.Info("Classification events enabled", slog.String("provider", cfg.Provider))

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closeWithin(ctx, publisher)
		},
	})

	return publisher, nil
}

func newPublisher(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}
}

// closeWithin closes the publisher but gives up waiting once ctx is done.
func closeWithin(ctx context.Context, publisher service.EventPublisher) error {
	done := make(chan error, 1)
	go func() {
		done <- publisher.Close()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "event publisher did not flush in time")
	}
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
