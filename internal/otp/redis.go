// ABOUTME: Redis-backed OTP store for multi-process deployments
// ABOUTME: Uses a Lua script for atomic compare-and-delete consumption

package otp

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:"

// consumeScript removes the key only when the stored code matches, so a
// code can never verify twice even under concurrent attempts.
var consumeScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if stored == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`)

// RedisStore is a Store backed by Redis. Expiry is delegated to Redis
// key TTLs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr and returns a Store.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis addr is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client}, nil
}

// Put stores a code for the target with the given TTL, replacing any
// pending one.
func (r *RedisStore) Put(ctx context.Context, target, code string, ttl time.Duration) error {
	return r.client.Set(ctx, redisKeyPrefix+target, code, ttl).Err()
}

// Consume atomically checks and removes the pending code for the target.
func (r *RedisStore) Consume(ctx context.Context, target, code string) (bool, error) {
	result, err := consumeScript.Run(ctx, r.client, []string{redisKeyPrefix + target}, code).Result()
	if err != nil {
		return false, err
	}
	matched, ok := result.(int64)
	if !ok {
		return false, errors.New("unexpected redis consume response")
	}
	return matched == 1, nil
}

// Close releases the underlying Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
