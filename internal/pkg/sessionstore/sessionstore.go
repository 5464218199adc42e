// Package sessionstore tracks revoked session tokens.
//
// Tokens are stateless JWTs; logout works by placing the token ID on a redis
// denylist until the token would have expired on its own. A missing key means
// the token is still good. Callers treat a store error as revoked, so redis
// downtime rejects sessions rather than letting revoked tokens through.
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore revokes session tokens and answers revocation checks.
type SessionStore interface {
	// Revoke denylists the token ID for ttl, the token's remaining lifetime.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked reports whether the token ID has been denylisted.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisStore implements SessionStore on a redis client.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// New returns a redis-backed session store.
func New(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:revoked:",
	}
}

// Revoke denylists the token ID for ttl. A non-positive ttl is a no-op since
// the token is already past its expiry.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	return s.client.Set(ctx, s.prefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been denylisted.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, s.prefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
