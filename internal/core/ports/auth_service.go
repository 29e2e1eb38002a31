package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// AuthService defines the signup/login/identity use cases. Signup and Login
// return the issued session token alongside the user; transporting the token
// (cookie handling) is the HTTP layer's concern.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
