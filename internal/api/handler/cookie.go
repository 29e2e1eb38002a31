package handler

import (
	"net/http"
	"time"

	"github.com/learnhub/learnhub-api/internal/api/middleware"
)

// sessionCookie builds the HTTP-only cookie carrying the session token. In
// production the cookie must cross origins from the browser client, which
// requires SameSite=None and therefore Secure; local development keeps the
// lax/insecure combination so plain-http setups work.
func sessionCookie(token string, maxAge time.Duration, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}
	return cookie
}

// clearedSessionCookie returns an expired copy of the session cookie with the
// same attributes, so browsers reliably drop it.
func clearedSessionCookie(production bool) *http.Cookie {
	cookie := sessionCookie("", 0, production)
	cookie.MaxAge = -1
	return cookie
}
