package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionDenylist records revoked session tokens in Redis until their natural
// expiry. Sessions are otherwise stateless, so this store is what makes
// logout actually revoke a token instead of only clearing the cookie.
// Key format: session:denied:<sha256(token)>
type SessionDenylist struct {
	client *redis.Client
}

// NewSessionDenylist creates a SessionDenylist wrapping the given client.
func NewSessionDenylist(client *redis.Client) *SessionDenylist {
	return &SessionDenylist{client: client}
}

// Revoke marks a token as unusable for the remainder of ttl. Entries expire
// on their own once the token would no longer verify anyway.
func (d *SessionDenylist) Revoke(ctx context.Context, tokenString string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, d.key(tokenString), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (d *SessionDenylist) IsRevoked(ctx context.Context, tokenString string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenString)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// key hashes the token so the raw credential never lands in Redis.
func (d *SessionDenylist) key(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return "session:denied:" + hex.EncodeToString(sum[:])
}
