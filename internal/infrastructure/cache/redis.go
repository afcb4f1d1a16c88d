package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tuananhdev/slack-assistant/pkg/config"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisStore adapts a Redis client to the Store interface
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(key string, value string, expiration time.Duration) {
	rs.client.Set(context.Background(), key, value, expiration)
}

// Get retrieves a value by key
func (rs *RedisStore) Get(key string) (string, bool) {
	value, err := rs.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// Delete removes a key
func (rs *RedisStore) Delete(key string) {
	rs.client.Del(context.Background(), key)
}

// SetIfAbsent stores a key-value pair only when the key is not already
// present. Returns true when the value was stored. Used to deduplicate
// redelivered Slack events.
func (rs *RedisStore) SetIfAbsent(key string, value string, expiration time.Duration) bool {
	ok, err := rs.client.SetNX(context.Background(), key, value, expiration).Result()
	if err != nil {
		// On a cache failure prefer processing a duplicate over dropping
		// an event.
		return true
	}
	return ok
}
