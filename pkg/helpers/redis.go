package helpers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisOnce hands out one-time claims on keys, e.g. so a redelivered
// queue message is processed only once.
type RedisOnce struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewRedisOnce(rdb *redis.Client, ttl time.Duration) *RedisOnce {
	return &RedisOnce{RDB: rdb, TTL: ttl}
}

// Claim returns true only for the first caller of key within TTL.
func (o *RedisOnce) Claim(ctx context.Context, key string) (bool, error) {
	return o.RDB.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), o.TTL).Result()
}

// Release drops a claim so the work can be retried.
func (o *RedisOnce) Release(ctx context.Context, key string) error {
	return o.RDB.Del(ctx, key).Err()
}
