// Package persistence selects the identity store backend.
package persistence

import (
	"log/slog"

	"genrelens/config"
	"genrelens/internal/domain/repository"
	"genrelens/internal/infra/persistence/mongodb"
	"genrelens/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// RepositoryParams holds dependencies for the UserRepository, injected by Fx
type RepositoryParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository opens the backend named by store.driver and returns its repository.
func NewUserRepository(params RepositoryParams) (repository.UserRepository, error) {
	driver := params.Config.Store.Driver

	switch driver {
	case "", config.StoreDriverPostgres:
		params.Logger.Info("Using PostgreSQL identity store")

		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewUserRepository(db), nil

	case config.StoreDriverMongo:
		params.Logger.Info("Using MongoDB identity store")

		collection, err := mongodb.New(mongodb.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return mongodb.NewUserRepository(collection), nil

	default:
		return nil, errors.Errorf("unknown store driver: %s", driver)
	}
}

// Module provides the identity store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewUserRepository),
)
