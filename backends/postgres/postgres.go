// Package postgres provides a storage backend on top of PostgreSQL. The
// backing table is created on first connect.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	ConnString string
	MaxConns   int32
	MinConns   int32
}

type Backend struct {
	pool *pgxpool.Pool
}

// New connects to postgres, verifies the connection and ensures the
// key-value table exists.
func New(config Config) (*Backend, error) {
	if config.MaxConns == 0 {
		config.MaxConns = 10
	}
	if config.MinConns == 0 {
		config.MinConns = 2
	}

	poolConfig, err := pgxpool.ParseConfig(config.ConnString)
	if err != nil {
		return nil, NewConnectionFailedError(err)
	}

	poolConfig.MaxConns = config.MaxConns
	poolConfig.MinConns = config.MinConns

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, NewConnectionFailedError(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, NewPingFailedError(err)
	}

	if err := createTable(context.Background(), pool); err != nil {
		pool.Close()
		return nil, NewTableCreationError(err)
	}

	return &Backend{pool: pool}, nil
}

func createTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS quotarate_kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at TIMESTAMP WITH TIME ZONE
		)
	`)
	return err
}

// GetPool exposes the underlying pool, mainly for test cleanup.
func (p *Backend) GetPool() *pgxpool.Pool {
	return p.pool
}

func (p *Backend) Get(ctx context.Context, key string) (string, error) {
	var value string
	var expiresAt *time.Time

	err := p.pool.QueryRow(ctx, `
		SELECT value, expires_at
		FROM quotarate_kv
		WHERE key = $1
	`, key).Scan(&value, &expiresAt)
	if err != nil {
		// Treat missing rows (and transient scan failures) as absent.
		return "", nil
	}

	if expiresAt != nil && time.Now().After(*expiresAt) {
		return "", nil
	}

	return value, nil
}

func (p *Backend) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO quotarate_kv (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at
	`, key, value, expiresAtFor(expiration))
	if err != nil {
		return NewSetFailedError(key, err)
	}
	return nil
}

func (p *Backend) Delete(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM quotarate_kv WHERE key = $1`, key)
	if err != nil {
		return NewDeleteFailedError(key, err)
	}
	return nil
}

// CheckAndSet atomically sets key to newValue only if the current value
// matches oldValue. Empty oldValue means "set only if key doesn't exist".
// Expired rows count as absent, mirroring the redis backend.
func (p *Backend) CheckAndSet(ctx context.Context, key, oldValue, newValue string, expiration time.Duration) (bool, error) {
	expiresAt := expiresAtFor(expiration)

	if oldValue == "" {
		// Insert wins only when the row is missing or already expired.
		tag, err := p.pool.Exec(ctx, `
			INSERT INTO quotarate_kv (key, value, expires_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET
				value = EXCLUDED.value,
				expires_at = EXCLUDED.expires_at
			WHERE quotarate_kv.expires_at IS NOT NULL
			  AND quotarate_kv.expires_at <= now()
		`, key, newValue, expiresAt)
		if err != nil {
			return false, NewCheckAndSetFailedError(key, err)
		}
		return tag.RowsAffected() == 1, nil
	}

	tag, err := p.pool.Exec(ctx, `
		UPDATE quotarate_kv
		SET value = $2, expires_at = $3
		WHERE key = $1
		  AND value = $4
		  AND (expires_at IS NULL OR expires_at > now())
	`, key, newValue, expiresAt, oldValue)
	if err != nil {
		return false, NewCheckAndSetFailedError(key, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (p *Backend) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

func expiresAtFor(expiration time.Duration) *time.Time {
	if expiration <= 0 {
		return nil
	}
	t := time.Now().Add(expiration)
	return &t
}
