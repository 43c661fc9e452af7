package quotarate

import (
	"fmt"

	"github.com/austinerwin/quotarate/backends"
	"github.com/austinerwin/quotarate/backends/memory"
	"github.com/austinerwin/quotarate/backends/postgres"
	"github.com/austinerwin/quotarate/backends/redis"
)

// Option is a functional option for configuring the limiter.
type Option func(*Config) error

// WithPhrase configures the limiter from a human-readable quota phrase,
// e.g. "20 messages per week" or "unlimited".
func WithPhrase(phrase string) Option {
	return func(config *Config) error {
		params, err := Parse(phrase)
		if err != nil {
			return err
		}
		config.Params = params
		config.paramsSet = true
		return nil
	}
}

// WithParams configures the limiter from already-parsed bucket parameters.
func WithParams(params BucketParams) Option {
	return func(config *Config) error {
		config.Params = params
		config.paramsSet = true
		return nil
	}
}

// WithBackend configures the limiter to use the given storage backend.
func WithBackend(storage backends.Backend) Option {
	return func(config *Config) error {
		config.Storage = storage
		return nil
	}
}

// WithMemoryBackend configures the limiter to use in-process storage.
func WithMemoryBackend() Option {
	return func(config *Config) error {
		config.Storage = memory.New()
		return nil
	}
}

// WithRedisBackend configures the limiter to use redis storage.
func WithRedisBackend(redisConfig backends.RedisConfig) Option {
	return func(config *Config) error {
		storage, err := redis.New(redis.Config{
			Addr:     redisConfig.Addr,
			Password: redisConfig.Password,
			DB:       redisConfig.DB,
			PoolSize: redisConfig.PoolSize,
		})
		if err != nil {
			return fmt.Errorf("failed to create redis storage: %w", err)
		}
		config.Storage = storage
		return nil
	}
}

// WithPostgresBackend configures the limiter to use PostgreSQL storage.
func WithPostgresBackend(pgConfig backends.PostgresConfig) Option {
	return func(config *Config) error {
		storage, err := postgres.New(postgres.Config{
			ConnString: pgConfig.ConnString,
			MaxConns:   pgConfig.MaxConns,
			MinConns:   pgConfig.MinConns,
		})
		if err != nil {
			return fmt.Errorf("failed to create postgres storage: %w", err)
		}
		config.Storage = storage
		return nil
	}
}

// WithBaseKey sets the key prefix shared by all buckets of this limiter.
func WithBaseKey(key string) Option {
	return func(config *Config) error {
		config.BaseKey = key
		return nil
	}
}
