package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Set stores a key-value pair with TTL
func (r *redisImpl) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key. A missing key returns goredis.Nil.
func (r *redisImpl) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Delete removes keys
func (r *redisImpl) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Exists checks if a key exists
func (r *redisImpl) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// TTL returns the remaining TTL of a key
func (r *redisImpl) TTL(ctx context.Context, key string) (time.Duration, error) {
	return r.client.TTL(ctx, key).Result()
}

// RunScript executes a Lua script atomically (EVALSHA with EVAL fallback).
func (r *redisImpl) RunScript(ctx context.Context, script *goredis.Script, keys []string, args ...interface{}) (interface{}, error) {
	return script.Run(ctx, r.client, keys, args...).Result()
}

// Close closes the Redis connection
func (r *redisImpl) Close() error {
	return r.client.Close()
}

// Ping checks if Redis is reachable
func (r *redisImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// GetClient returns the underlying redis.Client for advanced operations
func (r *redisImpl) GetClient() *goredis.Client {
	return r.client
}

// IsNil reports whether err is the go-redis "key does not exist" reply.
func IsNil(err error) bool {
	return err == goredis.Nil
}
