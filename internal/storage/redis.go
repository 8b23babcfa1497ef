package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"carrental-backend/internal/logger"
)

// RedisStore keeps each document as a plain string key
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient builds a client from storage configuration
func NewRedisClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	logger.StorageCall(TypeRedis, "get", key)
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.StorageResult(TypeRedis, "get", key, 0, nil)
		return nil, ErrKeyNotFound
	}
	logger.StorageResult(TypeRedis, "get", key, len(data), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Put(ctx context.Context, key string, data []byte) error {
	logger.StorageCall(TypeRedis, "put", key)
	err := r.client.Set(ctx, r.key(key), data, 0).Err()
	logger.StorageResult(TypeRedis, "put", key, len(data), err)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}
