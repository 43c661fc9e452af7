package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/austinerwin/quotarate/backends"
	"github.com/stretchr/testify/require"
)

func setupRedisTest(t *testing.T) (*Backend, func()) {
	t.Helper()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	storage, err := New(Config{
		Addr:     redisAddr,
		Password: "",
		DB:       0,
	})
	if err != nil {
		return nil, func() {}
	}

	teardown := func() {
		_ = storage.GetClient().FlushAll(context.Background())
		_ = storage.GetClient().Close()
	}

	return storage, teardown
}

func TestBackend_GetSet(t *testing.T) {
	ctx := context.Background()
	storage, teardown := setupRedisTest(t)
	defer teardown()

	if storage == nil {
		t.Skip("Redis not available, skipping tests")
	}

	t.Run("Get non-existent key", func(t *testing.T) {
		val, err := storage.Get(ctx, "nonexistent")
		require.NoError(t, err)
		require.Equal(t, "", val)
	})

	t.Run("Set and get", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "testkey", "testvalue", time.Hour))

		val, err := storage.Get(ctx, "testkey")
		require.NoError(t, err)
		require.Equal(t, "testvalue", val)
	})

	t.Run("Expired key reads as empty", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "shortlived", "value", 20*time.Millisecond))
		time.Sleep(50 * time.Millisecond)

		val, err := storage.Get(ctx, "shortlived")
		require.NoError(t, err)
		require.Equal(t, "", val)
	})
}

func TestBackend_Delete(t *testing.T) {
	ctx := context.Background()
	storage, teardown := setupRedisTest(t)
	defer teardown()

	if storage == nil {
		t.Skip("Redis not available, skipping tests")
	}

	require.NoError(t, storage.Set(ctx, "delkey", "value", time.Hour))
	require.NoError(t, storage.Delete(ctx, "delkey"))

	val, err := storage.Get(ctx, "delkey")
	require.NoError(t, err)
	require.Equal(t, "", val)
}

func TestBackend_CheckAndSet(t *testing.T) {
	ctx := context.Background()
	storage, teardown := setupRedisTest(t)
	defer teardown()

	if storage == nil {
		t.Skip("Redis not available, skipping tests")
	}

	t.Run("Set if not exists", func(t *testing.T) {
		ok, err := storage.CheckAndSet(ctx, "cas1", "", "value", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = storage.CheckAndSet(ctx, "cas1", "", "other", time.Hour)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Matching old value", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "cas2", "old", time.Hour))

		ok, err := storage.CheckAndSet(ctx, "cas2", "old", "new", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		val, err := storage.Get(ctx, "cas2")
		require.NoError(t, err)
		require.Equal(t, "new", val)
	})

	t.Run("Mismatched old value", func(t *testing.T) {
		require.NoError(t, storage.Set(ctx, "cas3", "actual", time.Hour))

		ok, err := storage.CheckAndSet(ctx, "cas3", "expected", "new", time.Hour)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Zero expiration keeps key", func(t *testing.T) {
		ok, err := storage.CheckAndSet(ctx, "cas4", "", "value", 0)
		require.NoError(t, err)
		require.True(t, ok)

		val, err := storage.Get(ctx, "cas4")
		require.NoError(t, err)
		require.Equal(t, "value", val)
	})
}

func TestRegister_InvalidConfig(t *testing.T) {
	_, err := backends.Create("redis", "not-a-config")
	require.ErrorIs(t, err, backends.ErrInvalidConfig)

	_, err = backends.Create("redis", backends.RedisConfig{})
	require.ErrorIs(t, err, backends.ErrInvalidConfig)
}
