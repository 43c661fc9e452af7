package quotarate

import (
	"context"
	"fmt"
	"time"

	"github.com/austinerwin/quotarate/bucket"
	"github.com/austinerwin/quotarate/utils/builderpool"
)

// Limiter enforces a parsed quota against a storage backend. One bucket is
// kept per dynamic key, prefixed with the configured base key.
type Limiter struct {
	config     Config
	strategy   *bucket.Strategy
	basePrefix string // cached BaseKey + ":" for fast key construction
}

// New creates a limiter with functional options. A quota (WithPhrase or
// WithParams) and a storage backend are required; the base key defaults
// to "default".
func New(opts ...Option) (*Limiter, error) {
	config := Config{
		BaseKey: "default",
	}

	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Limiter{
		config:     config,
		strategy:   bucket.New(config.Storage),
		basePrefix: config.BaseKey + ":",
	}, nil
}

// Params returns the bucket parameters the limiter was built from.
func (l *Limiter) Params() BucketParams {
	return l.config.Params
}

// Allow consumes one token for key and reports whether the request is
// admitted. Unlimited quotas always admit without touching storage.
func (l *Limiter) Allow(ctx context.Context, key string) (bucket.Result, error) {
	storageKey, err := l.buildKey(key)
	if err != nil {
		return bucket.Result{}, err
	}

	if l.config.Params.Unlimited {
		return unlimitedResult(), nil
	}

	result, err := l.strategy.Allow(ctx, l.bucketConfig(storageKey))
	if err != nil {
		return bucket.Result{}, fmt.Errorf("bucket check failed: %w", err)
	}
	return result, nil
}

// Peek reports the bucket state for key without consuming a token.
func (l *Limiter) Peek(ctx context.Context, key string) (bucket.Result, error) {
	storageKey, err := l.buildKey(key)
	if err != nil {
		return bucket.Result{}, err
	}

	if l.config.Params.Unlimited {
		return unlimitedResult(), nil
	}

	result, err := l.strategy.Peek(ctx, l.bucketConfig(storageKey))
	if err != nil {
		return bucket.Result{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return result, nil
}

// Reset clears the bucket for key (mainly for testing).
func (l *Limiter) Reset(ctx context.Context, key string) error {
	storageKey, err := l.buildKey(key)
	if err != nil {
		return err
	}

	if l.config.Params.Unlimited {
		return nil
	}

	if err := l.strategy.Reset(ctx, l.bucketConfig(storageKey)); err != nil {
		return fmt.Errorf("failed to reset bucket: %w", err)
	}
	return nil
}

// Close releases the storage backend.
func (l *Limiter) Close() error {
	if l.config.Storage != nil {
		return l.config.Storage.Close()
	}
	return nil
}

func (l *Limiter) bucketConfig(storageKey string) bucket.Config {
	return bucket.Config{
		Key:        storageKey,
		Capacity:   l.config.Params.Capacity,
		RefillRate: l.config.Params.RatePerSec,
	}
}

// buildKey validates the dynamic key and joins it with the base prefix.
// An empty key falls back to "default".
func (l *Limiter) buildKey(key string) (string, error) {
	if key == "" {
		key = "default"
	} else if err := validateKey(key, "dynamic key"); err != nil {
		return "", err
	}

	sb := builderpool.Get()
	defer builderpool.Put(sb)

	sb.WriteString(l.basePrefix)
	sb.WriteString(key)
	return sb.String(), nil
}

// unlimitedResult is what unlimited quotas report: always admitted, with
// Remaining set to -1 since no bound exists.
func unlimitedResult() bucket.Result {
	return bucket.Result{
		Allowed:   true,
		Remaining: -1,
		Reset:     time.Now(),
	}
}
