package calendar

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const tokenKey = "google:calendar:token"

// TokenStore persists the Google OAuth token between restarts.
type TokenStore interface {
	Save(ctx context.Context, token *oauth2.Token) error
	Load(ctx context.Context) (*oauth2.Token, error)
}

// RedisTokenStore stores the serialized token in Redis.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a Redis-backed token store
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

// Save serializes and stores the token. Tokens carry their own expiry, so
// the key itself never expires.
func (s *RedisTokenStore) Save(ctx context.Context, token *oauth2.Token) error {
	b, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to serialize token: %w", err)
	}
	return s.client.Set(ctx, tokenKey, b, 0).Err()
}

// Load retrieves and deserializes the stored token.
func (s *RedisTokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	b, err := s.client.Get(ctx, tokenKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoToken
		}
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(b, &token); err != nil {
		return nil, fmt.Errorf("failed to deserialize token: %w", err)
	}
	return &token, nil
}
