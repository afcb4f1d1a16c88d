package cache

import "time"

// Store is a key-value store with expiration, satisfied by both the Redis
// and in-memory implementations.
type Store interface {
	Set(key string, value string, expiration time.Duration)
	Get(key string) (string, bool)
	Delete(key string)
	SetIfAbsent(key string, value string, expiration time.Duration) bool
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
