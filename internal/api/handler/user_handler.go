package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// UserHandler exposes the admin-only user listing.
type UserHandler struct {
	service ports.AuthService
}

func NewUserHandler(service ports.AuthService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns every account's public profile, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  usersEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersEnvelope{Users: users})
}
