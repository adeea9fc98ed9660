package oauthstate

import (
	"context"
	"log/slog"

	"genrelens/config"
	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the StateStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewStateStore selects the CSRF state store named by oauthState.provider.
func NewStateStore(params StoreParams) (service.StateStore, error) {
	cfg := params.Config.OAuthState
	logger := params.Logger

	switch cfg.Provider {
	case "", config.StateProviderMemory:
		logger.Info("Using in-memory OAuth state store", slog.Duration("ttl", cfg.TTL))

		return NewMemoryStore(cfg.TTL), nil

	case config.StateProviderRedis:
		client, err := NewRedisClient(params.Ctx, params.Config.Redis)
		if err != nil {
			return nil, err
		}
		logger.Info("Using Redis OAuth state store", slog.String("addr", client.Options().Addr))

		store := NewRedisStore(client, cfg.TTL)
		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				logger.Info("Closing Redis OAuth state store")

				return store.Close()
			},
		})

		return store, nil

	default:
		return nil, errors.Errorf("unknown oauth state provider: %s", cfg.Provider)
	}
}

// Module provides the OAuth state FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStateStore),
)
