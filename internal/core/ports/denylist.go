package ports

import (
	"context"
	"time"
)

// SessionDenylist records revoked session tokens until their natural expiry.
// Sessions are otherwise stateless; this is the only server-side trust state
// and it bounds the window where a logged-out token would still verify.
type SessionDenylist interface {
	// Revoke marks a token as unusable for the remainder of ttl.
	Revoke(ctx context.Context, tokenString string, ttl time.Duration) error
	// IsRevoked reports whether the token has been revoked.
	IsRevoked(ctx context.Context, tokenString string) (bool, error)
}
