package backends

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubBackend struct{}

func (stubBackend) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (stubBackend) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return nil
}
func (stubBackend) CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error) {
	return false, nil
}
func (stubBackend) Delete(ctx context.Context, key string) error { return nil }
func (stubBackend) Close() error                                 { return nil }

func TestRegistry_CreateUnknown(t *testing.T) {
	_, err := Create("does-not-exist", nil)
	require.ErrorIs(t, err, ErrBackendNotFound)
}

func TestRegistry_RegisterAndCreate(t *testing.T) {
	var got any
	Register("stub", func(config any) (Backend, error) {
		got = config
		return stubBackend{}, nil
	})

	backend, err := Create("stub", "some-config")
	require.NoError(t, err)
	require.NotNil(t, backend)
	require.Equal(t, "some-config", got)
}
