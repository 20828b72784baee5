package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "payportal:revoked:"

// TokenStore tracks revoked JWT IDs so a logged-out token is rejected for the
// remainder of its lifetime. Entries expire with the token itself.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a token revocation store.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks the token ID revoked until its expiry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to track.
		return nil
	}
	return s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
