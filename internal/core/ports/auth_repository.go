package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// email unique index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users ordered newest-first.
	List(ctx context.Context) ([]*domain.User, error)
}
