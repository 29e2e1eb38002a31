package handler

import "github.com/learnhub/learnhub-api/internal/core/domain"

type signupRequest struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=200"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=200"`
}

// userEnvelope wraps a single user; the token itself travels only in the
// session cookie, never in the body.
type userEnvelope struct {
	User *domain.User `json:"user"`
}

type usersEnvelope struct {
	Users []*domain.User `json:"users"`
}

type okResponse struct {
	OK bool `json:"ok"`
}
