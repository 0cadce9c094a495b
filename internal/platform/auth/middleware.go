package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ErrUnknownAccount is returned by a UserDirectory when the token subject
// does not resolve to any account. Any other lookup error is treated as an
// infrastructure failure, not a credential failure.
var ErrUnknownAccount = errors.New("unknown account")

type contextKey string

// UsernameKey carries the authenticated username on the request context.
const UsernameKey contextKey = "username"

// Account is the minimal view of a user the middleware needs.
type Account struct {
	Username string
	Active   bool
}

// UserDirectory resolves a token subject to an account. The user domain
// package implements it; the small local interface avoids a circular import.
type UserDirectory interface {
	Lookup(ctx context.Context, username string) (*Account, error)
}

// Middleware enforces "Authorization: Bearer <token>" on every route it
// wraps: 401 for a missing, malformed, expired or unknown-subject token,
// 403 for a valid token whose account is inactive. A directory error other
// than ErrUnknownAccount maps to 500 so a store outage is not mistaken for
// bad credentials.
func Middleware(issuer *Issuer, users UserDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			username, err := issuer.Validate(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			account, err := users.Lookup(c.Request().Context(), username)
			if err != nil {
				if errors.Is(err, ErrUnknownAccount) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "user lookup failed")
			}
			if account == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if !account.Active {
				return echo.NewHTTPError(http.StatusForbidden, "inactive user")
			}

			ctx := context.WithValue(c.Request().Context(), UsernameKey, account.Username)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(UsernameKey).(string); ok {
		return v
	}
	return ""
}
