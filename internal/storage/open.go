package storage

import (
	"context"
	"database/sql"
	"fmt"

	"carrental-backend/internal/logger"
)

// Open connects the backend selected by cfg. The returned closer releases
// any connection held by the backend.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	noop := func() error { return nil }

	switch cfg.Type {
	case TypeMemory:
		logger.Info("Using in-memory storage")
		return NewMemoryStore(), noop, nil

	case TypePostgres:
		logger.Info("Using postgres storage", "table", cfg.Table)
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store := NewPostgresStore(db, cfg.Table)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	case TypeRedis:
		logger.Info("Using redis storage", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		client := NewRedisClient(cfg)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		return NewRedisStore(client, cfg.KeyPrefix), client.Close, nil

	default:
		logger.Info("Using file storage (local filesystem)", "dir", cfg.Dir)
		store, err := NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}
