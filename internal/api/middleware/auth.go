package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/core/ports"
	"github.com/learnhub/learnhub-api/internal/core/token"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "accessToken"

// Auth verifies the session cookie and injects the verified claims into the
// request context. A missing cookie, a failed verification and a revoked
// token all collapse into the same 401 so the caller never learns which
// check failed. denylist may be nil when no revocation store is configured;
// when one is configured, a failed revocation lookup also rejects the request
// (fail closed): a session is only accepted when its revocation state could
// actually be checked.
func Auth(codec *token.Codec, denylist ports.SessionDenylist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			if denylist != nil {
				revoked, err := denylist.IsRevoked(c.Request().Context(), cookie.Value)
				if err != nil || revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
				}
			}

			c.Set("user_id", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
			c.Set("name", claims.Name)

			return next(c)
		}
	}
}
