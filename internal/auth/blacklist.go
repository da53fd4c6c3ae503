package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "auth:blacklist:"

// TokenBlacklist revokes JWTs before their natural expiry. Entries live in
// Redis with a TTL matching the remaining token lifetime.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist wraps the shared Redis client.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Revoke marks the token id as invalid until expiresAt.
func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if b == nil || b.client == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked. Redis outages
// fail open so an unavailable blacklist cannot lock everyone out.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	if b == nil || b.client == nil {
		return false
	}
	n, err := b.client.Exists(ctx, blacklistPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
