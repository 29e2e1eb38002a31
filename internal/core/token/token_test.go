package token

import (
	"strings"
	"testing"
	"time"
)

func TestCodec_IssueAndVerify(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(Claims{Subject: "u1", Role: "user", Email: "a@example.com", Name: "Alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "u1" {
		t.Fatalf("subject = %q, want u1", claims.Subject)
	}
	if claims.Role != "user" || claims.Email != "a@example.com" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCodec_EmptySecret(t *testing.T) {
	codec := NewCodec("", time.Hour)

	if _, err := codec.Issue(Claims{Subject: "u1"}); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
	if _, err := codec.Verify("anything"); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a", time.Hour).Issue(Claims{Subject: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("secret-b", time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_TamperedToken(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	signed, err := codec.Issue(Claims{Subject: "u1", Role: "user"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	// Swap the payload for a different one; the signature no longer matches.
	tampered := parts[0] + ".eyJyb2xlIjoiYWRtaW4ifQ." + parts[2]

	if _, err := codec.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(input); err != ErrInvalidToken {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", input, err)
		}
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := &Codec{secret: []byte("secret"), ttl: -time.Minute}
	signed, err := codec.Issue(Claims{Subject: "u1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("secret", time.Hour).Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	if got := NewCodec("secret", 0).TTL(); got != time.Hour {
		t.Fatalf("default TTL = %v, want 1h", got)
	}
}
