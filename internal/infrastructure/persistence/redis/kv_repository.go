// Package redis provides the Redis-backed key-value store
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
)

// KVRepository implements outbound.KeyValueStore on Redis strings. Values
// never expire.
type KVRepository struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewClient builds a client from configuration
func NewClient(cfg *config.Config) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{cfg.RedisAddr()},
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.Database,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})
}

// NewKVRepository wraps client; every key is stored under prefix.
func NewKVRepository(client redis.UniversalClient, prefix string, logger *zap.Logger) *KVRepository {
	return &KVRepository{client: client, prefix: prefix, logger: logger.Named("kv-redis")}
}

func (r *KVRepository) key(k string) string {
	return r.prefix + k
}

// Get retrieves a value, mapping redis.Nil to outbound.ErrKeyNotFound
func (r *KVRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", outbound.ErrKeyNotFound
	}
	if err != nil {
		r.logger.Debug("redis get failed", zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value without expiration
func (r *KVRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		r.logger.Error("redis set failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Delete removes a value
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Ping checks connectivity
func (r *KVRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client
func (r *KVRepository) Close() error {
	return r.client.Close()
}
