package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "token:blacklist:"

// Blacklist stores revoked tokens in Redis until their natural expiry.
type Blacklist struct {
	client *redis.Client
}

// NewBlacklist wraps a redis client as a token revocation list.
func NewBlacklist(client *redis.Client) *Blacklist {
	return &Blacklist{client: client}
}

// Revoke records the token as invalid until expiresAt.
func (b *Blacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if b == nil || b.client == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistPrefix+token, "revoked", ttl).Err()
}

// IsRevoked reports whether the token has been blacklisted. Redis being
// unreachable counts as not revoked; token expiry still bounds the exposure.
func (b *Blacklist) IsRevoked(ctx context.Context, token string) bool {
	if b == nil || b.client == nil {
		return false
	}
	_, err := b.client.Get(ctx, blacklistPrefix+token).Result()
	return err == nil
}
