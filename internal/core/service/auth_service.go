package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
	"github.com/learnhub/learnhub-api/internal/core/token"
)

// bcryptCost matches the cost factor the platform has always used for
// password hashes; existing hashes verify regardless of cost.
const bcryptCost = 10

// AuthService implements signup, login and identity lookup.
type AuthService struct {
	repo   ports.AuthRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Signup creates a new account with role "user" and issues a session token.
// Duplicate emails surface as domain.ErrEmailTaken from the unique index.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	signed, err := s.issueToken(created)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return signed, created, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return domain.ErrInvalidCredentials so callers cannot
// enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return signed, user, nil
}

// Me returns the public profile for the subject carried in a verified session.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// ListUsers returns all accounts, newest first. Admin-only at the router.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	return s.codec.Issue(token.Claims{
		Subject: user.ID,
		Role:    user.Role,
		Email:   user.Email,
		Name:    user.Name,
	})
}
