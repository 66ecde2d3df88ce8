package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
	"github.com/Sterdizzy/ez-olx/internal/core/port"
)

// KeyValueStoreAdapter implements KeyValueStorePort on PostgreSQL. The store
// mirrors the browser localStorage the web client used: one row per logical
// key holding a JSON payload.
type KeyValueStoreAdapter struct {
	pool *pgxpool.Pool
}

func NewKeyValueStoreAdapter(ctx context.Context, pool *pgxpool.Pool) (*KeyValueStoreAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}

	adapter := &KeyValueStoreAdapter{pool: pool}
	if err := adapter.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("NewKeyValueStoreAdapter: %w", err)
	}
	return adapter, nil
}

func (a *KeyValueStoreAdapter) ensureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := a.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure kv_store table: %w", err)
	}
	return nil
}

// Get returns the payload stored under key, or (nil, nil) when absent.
func (a *KeyValueStoreAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	storeLogger := logger.WithFields(port.Fields{
		"component": "KeyValueStoreAdapter",
		"key":       key,
	})

	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte
	err := a.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		storeLogger.Error("Failed to read key", err, nil)
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return value, nil
}

func (a *KeyValueStoreAdapter) Set(ctx context.Context, key string, value []byte) error {
	logger := contextkeys.LoggerFromContext(ctx)
	storeLogger := logger.WithFields(port.Fields{
		"component": "KeyValueStoreAdapter",
		"key":       key,
	})

	query := `
		INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`

	if _, err := a.pool.Exec(ctx, query, key, value); err != nil {
		storeLogger.Error("Failed to write key", err, nil)
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	storeLogger.Debug("Key written.", port.Fields{"bytes": len(value)})
	return nil
}

func (a *KeyValueStoreAdapter) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`
	if _, err := a.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

func (a *KeyValueStoreAdapter) Clear(ctx context.Context) error {
	query := `DELETE FROM kv_store`
	if _, err := a.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	return nil
}
