package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/api/middleware"
	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/token"
)

type stubAuthService struct {
	signupToken string
	signupUser  *domain.User
	signupErr   error

	loginToken string
	loginUser  *domain.User
	loginErr   error

	meUser *domain.User
	meErr  error
}

func (s *stubAuthService) Signup(_ context.Context, name, email, password string) (string, *domain.User, error) {
	if s.signupErr != nil {
		return "", nil, s.signupErr
	}
	return s.signupToken, s.signupUser, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginUser, nil
}

func (s *stubAuthService) Me(_ context.Context, userID string) (*domain.User, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	return s.meUser, nil
}

func (s *stubAuthService) ListUsers(_ context.Context) ([]*domain.User, error) {
	return nil, nil
}

type recordingDenylist struct {
	revoked []string
}

func (d *recordingDenylist) Revoke(_ context.Context, token string, _ time.Duration) error {
	d.revoked = append(d.revoked, token)
	return nil
}

func (d *recordingDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	return false, nil
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	res := &http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	t.Fatalf("no %q cookie in response", middleware.SessionCookieName)
	return nil
}

func TestAuthHandler_Signup_SetsCookieAndReturnsUser(t *testing.T) {
	svc := &stubAuthService{
		signupToken: "signed.token.value",
		signupUser:  &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser},
	}
	h := NewAuthHandler(svc, token.NewCodec("secret", time.Hour), nil, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "signed.token.value" {
		t.Errorf("cookie value = %q, want the issued token", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookie.Secure {
		t.Error("session cookie must not be Secure outside production")
	}
	if cookie.MaxAge != int(time.Hour.Seconds()) {
		t.Errorf("cookie MaxAge = %d, want %d", cookie.MaxAge, int(time.Hour.Seconds()))
	}

	var body struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body.User == nil || body.User.Email != "ana@example.com" {
		t.Errorf("unexpected user in response: %+v", body.User)
	}
}

func TestAuthHandler_Signup_ProductionCookieAttributes(t *testing.T) {
	svc := &stubAuthService{
		signupToken: "tok",
		signupUser:  &domain.User{ID: "u1", Email: "ana@example.com"},
	}
	h := NewAuthHandler(svc, token.NewCodec("secret", time.Hour), nil, true)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	cookie := sessionCookieFrom(t, rec)
	if !cookie.Secure {
		t.Error("production cookie must be Secure")
	}
	if cookie.SameSite != http.SameSiteNoneMode {
		t.Errorf("production cookie SameSite = %v, want None", cookie.SameSite)
	}
}

func TestAuthHandler_Signup_RejectsInvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, token.NewCodec("secret", time.Hour), nil, false)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"name":"Ana","password":"secret1"}`},
		{"bad email", `{"name":"Ana","email":"nope","password":"secret1"}`},
		{"short password", `{"name":"Ana","email":"ana@example.com","password":"abc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newAuthTestContext(t, http.MethodPost, "/auth/signup", tc.body)

			err := h.Signup(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Fatalf("err = %v, want 400 HTTPError", err)
			}
		})
	}
}

func TestAuthHandler_Signup_PropagatesServiceError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrEmailTaken},
		token.NewCodec("secret", time.Hour), nil, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/signup",
		`{"name":"Ana","email":"ana@example.com","password":"secret1"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
	if got := rec.Header().Get(echo.HeaderSetCookie); got != "" {
		t.Errorf("no cookie expected on failure, got %q", got)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	svc := &stubAuthService{
		loginToken: "signed.login.token",
		loginUser:  &domain.User{ID: "u1", Email: "ana@example.com", Role: domain.RoleUser},
	}
	h := NewAuthHandler(svc, token.NewCodec("secret", time.Hour), nil, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if cookie := sessionCookieFrom(t, rec); cookie.Value != "signed.login.token" {
		t.Errorf("cookie value = %q", cookie.Value)
	}
}

func TestAuthHandler_Login_PropagatesInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials},
		token.NewCodec("secret", time.Hour), nil, false)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"ana@example.com","password":"wrong-pass"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandler_Me_ReturnsProfile(t *testing.T) {
	svc := &stubAuthService{meUser: &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}}
	h := NewAuthHandler(svc, token.NewCodec("secret", time.Hour), nil, false)

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "u1")

	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"ana@example.com"`) {
		t.Errorf("response missing user email: %s", rec.Body.String())
	}
}

func TestAuthHandler_Me_WithoutIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, token.NewCodec("secret", time.Hour), nil, false)

	c, _ := newAuthTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 HTTPError", err)
	}
}

func TestAuthHandler_Logout_ClearsCookieAndRevokes(t *testing.T) {
	codec := token.NewCodec("secret", time.Hour)
	signed, err := codec.Issue(token.Claims{Subject: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	denylist := &recordingDenylist{}
	h := NewAuthHandler(&stubAuthService{}, codec, denylist, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: signed})

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
	if len(denylist.revoked) != 1 || denylist.revoked[0] != signed {
		t.Errorf("token not revoked: %v", denylist.revoked)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	denylist := &recordingDenylist{}
	h := NewAuthHandler(&stubAuthService{}, token.NewCodec("secret", time.Hour), denylist, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")

	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(denylist.revoked) != 0 {
		t.Errorf("nothing should be revoked without a cookie, got %v", denylist.revoked)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.MaxAge != -1 {
		t.Errorf("cookie MaxAge = %d, want -1", cookie.MaxAge)
	}
}
