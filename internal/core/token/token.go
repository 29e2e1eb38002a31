// Package token issues and verifies the signed session assertions that carry
// authentication state between requests. Tokens are self-contained HS256 JWTs;
// the server keeps no session table.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSecret = errors.New("token: signing secret is required")
var ErrInvalidToken = errors.New("token: invalid or expired token")

// Claims is the identity payload embedded in every session token.
type Claims struct {
	Subject string
	Role    string
	Email   string
	Name    string
}

type sessionClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a single shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec returns a Codec. If ttl <= 0 a one hour lifetime is used.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL reports the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue produces a signed token embedding claims with an expiry of now+ttl.
func (c *Codec) Issue(claims Claims) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	sc := sessionClaims{
		Role:  claims.Role,
		Email: claims.Email,
		Name:  claims.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString(c.secret)
}

// Verify parses and validates a token. Malformed tokens, wrong signatures,
// wrong algorithms and elapsed expiries all collapse into ErrInvalidToken;
// callers never learn which check failed. The HMAC comparison inside the jwt
// library is constant-time.
func (c *Codec) Verify(tokenString string) (Claims, error) {
	if len(c.secret) == 0 {
		return Claims{}, ErrNoSecret
	}

	var sc sessionClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &sc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	return Claims{
		Subject: sc.Subject,
		Role:    sc.Role,
		Email:   sc.Email,
		Name:    sc.Name,
	}, nil
}
