package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type fakeDirectory struct {
	accounts map[string]*Account
}

func (d *fakeDirectory) Lookup(_ context.Context, username string) (*Account, error) {
	a, ok := d.accounts[username]
	if !ok {
		return nil, ErrUnknownAccount
	}
	return a, nil
}

type failingDirectory struct{}

func (failingDirectory) Lookup(_ context.Context, _ string) (*Account, error) {
	return nil, fmt.Errorf("dial tcp: connection refused")
}

func newTestMiddleware() (*Issuer, echo.MiddlewareFunc) {
	issuer := NewIssuer([]byte("test-secret"), 30*time.Minute)
	dir := &fakeDirectory{accounts: map[string]*Account{
		"admin":    {Username: "admin", Active: true},
		"disabled": {Username: "disabled", Active: false},
	}}
	return issuer, Middleware(issuer, dir)
}

func invoke(mw echo.MiddlewareFunc, authHeader string) (int, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUser string
	handler := mw(func(c echo.Context) error {
		seenUser = UsernameFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	if err == nil && seenUser == "" {
		return rec.Code, fmt.Errorf("handler ran without username on context")
	}
	return rec.Code, err
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	issuer, mw := newTestMiddleware()
	token, _ := issuer.Issue("admin")

	code, err := invoke(mw, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
}

func TestMiddlewareMissingHeader(t *testing.T) {
	_, mw := newTestMiddleware()
	_, err := invoke(mw, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	_, mw := newTestMiddleware()
	_, err := invoke(mw, "Basic abcdef")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddlewareUnknownSubject(t *testing.T) {
	issuer, mw := newTestMiddleware()
	token, _ := issuer.Issue("ghost")

	_, err := invoke(mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddlewareLookupFailureIsNot401(t *testing.T) {
	issuer := NewIssuer([]byte("test-secret"), 30*time.Minute)
	mw := Middleware(issuer, failingDirectory{})
	token, _ := issuer.Issue("admin")

	_, err := invoke(mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for a directory outage, got %v", err)
	}
}

func TestMiddlewareInactiveUser(t *testing.T) {
	issuer, mw := newTestMiddleware()
	token, _ := issuer.Issue("disabled")

	_, err := invoke(mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestMiddlewareExpiredToken(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer([]byte("test-secret"), time.Minute).WithClock(func() time.Time { return now })
	dir := &fakeDirectory{accounts: map[string]*Account{"admin": {Username: "admin", Active: true}}}
	mw := Middleware(issuer, dir)

	token, _ := issuer.Issue("admin")
	now = now.Add(2 * time.Minute)

	_, err := invoke(mw, "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}
