package backends

import (
	"context"
	"time"
)

// Backend is the storage contract used to persist bucket state. Values are
// opaque strings; implementations must provide compare-and-swap semantics
// so concurrent limiters can update state without losing tokens.
type Backend interface {
	// Get retrieves a value. A missing or expired key yields "" and no error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value with the given time-to-live. A zero expiration
	// means the key never expires.
	Set(ctx context.Context, key, value string, expiration time.Duration) error

	// CheckAndSet atomically replaces the value only if the current value
	// equals oldValue. An empty oldValue means "set only if the key does not
	// exist". Expired keys count as absent. Returns true when the set
	// happened.
	CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error)

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}
