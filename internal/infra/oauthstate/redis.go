package oauthstate

import (
	"context"
	"fmt"
	"time"

	"genrelens/config"
	"genrelens/internal/domain/lifecycle"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisHost = "127.0.0.1"
	defaultRedisPort = 6379

	keyPrefix = "genrelens:oauth_state:"
)

// RedisStore keeps issued states in Redis so any replica can complete the callback.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a go-redis client from config and pings it.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg == nil {
		return nil, errors.New("redis config is required for the redis state provider")
	}

	host := cfg.Host
	if host == "" {
		host = defaultRedisHost
	}
	port := cfg.Port
	if port == 0 {
		port = defaultRedisPort
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrap(err, "failed to ping redis")
	}

	return client, nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, state string) error {
	if err := s.client.Set(ctx, stateKey(state), 1, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save oauth state")
	}

	return nil
}

// Consume uses GETDEL so a state can only be redeemed once across replicas.
func (s *RedisStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, stateKey(state)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to consume oauth state")
	}

	return true, nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func stateKey(state string) string {
	return keyPrefix + state
}
