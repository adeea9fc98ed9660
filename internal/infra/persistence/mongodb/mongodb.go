// Package mongodb implements the identity store on a MongoDB collection, one document per user
// with the history embedded.
package mongodb

import (
	"context"
	"log/slog"

	"genrelens/config"
	"genrelens/internal/domain/lifecycle"
	"genrelens/internal/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const (
	defaultDatabase   = "genrelens"
	defaultCollection = "users"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to MongoDB and returns the users collection. The connection is verified
// and the googleId index ensured on start.
func New(params Params) (*mongo.Collection, error) {
	cfg := params.Config.Mongo
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("mongo uri is required for the mongo store driver")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create MongoDB client")
	}

	database := cfg.Database
	if database == "" {
		database = defaultDatabase
	}
	collectionName := cfg.Collection
	if collectionName == "" {
		collectionName = defaultCollection
	}
	collection := client.Database(database).Collection(collectionName)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx, nil); err != nil {
				return errors.Wrap(err, "failed to ping MongoDB")
			}

			if err := EnsureIndexes(ctx, collection); err != nil {
				return err
			}

			params.Logger.Info("MongoDB identity store ready",
				slog.String("database", database),
				slog.String("collection", collectionName),
			)

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			ctx, cancel := context.WithTimeout(stopCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return client.Disconnect(ctx)
		},
	})

	return collection, nil
}

// EnsureIndexes creates the unique index that keeps one document per Google ID.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fieldGoogleID, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_google_id"),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create googleId index")
	}

	return nil
}
