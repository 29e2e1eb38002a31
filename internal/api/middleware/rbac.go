package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole gates a route on an exact role match. There is no hierarchy:
// admin does not implicitly satisfy a check for any other role. Must run
// after Auth; a request that failed authentication never reaches this gate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actual, _ := c.Get("role").(string)
			if actual != role {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
