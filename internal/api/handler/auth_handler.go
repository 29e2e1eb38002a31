package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/api/middleware"
	"github.com/learnhub/learnhub-api/internal/core/ports"
	"github.com/learnhub/learnhub-api/internal/core/token"
)

// AuthHandler handles signup, login, logout and identity lookup. The session
// token is transported exclusively through an HTTP-only cookie.
type AuthHandler struct {
	service    ports.AuthService
	codec      *token.Codec
	denylist   ports.SessionDenylist
	production bool
}

func NewAuthHandler(service ports.AuthService, codec *token.Codec, denylist ports.SessionDenylist, production bool) *AuthHandler {
	return &AuthHandler{service: service, codec: codec, denylist: denylist, production: production}
}

// Signup creates a new account and starts a session.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.service.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	c.SetCookie(sessionCookie(signed, h.codec.TTL(), h.production))
	return c.JSON(http.StatusCreated, userEnvelope{User: user})
}

// Login authenticates an account and starts a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(sessionCookie(signed, h.codec.TTL(), h.production))
	return c.JSON(http.StatusOK, userEnvelope{User: user})
}

// Me returns the authenticated account's public profile.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userEnvelope
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userEnvelope{User: user})
}

// Logout ends the session. It always succeeds: the cookie is cleared
// unconditionally, and when a revocation store is configured the presented
// token is denylisted until its natural expiry. A missing or invalid cookie
// is not an error; there is simply nothing to revoke.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  okResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if h.denylist != nil {
		if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
			if _, err := h.codec.Verify(cookie.Value); err == nil {
				// Best effort: a failed revoke must not block logout.
				_ = h.denylist.Revoke(c.Request().Context(), cookie.Value, h.codec.TTL())
			}
		}
	}

	c.SetCookie(clearedSessionCookie(h.production))
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
