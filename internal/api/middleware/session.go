package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/ports"
)

// Session resolves the session cookie into request context, setting "user"
// and "username" for downstream handlers. Anonymous requests (no cookie,
// expired token, or a session whose account is gone) pass through with no
// identity set; handlers and the RBAC gate decide what that means.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie("session")
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := auth.CurrentUser(c.Request().Context(), cookie.Value)
			if err != nil {
				return next(c)
			}

			c.Set("username", user.Username)
			c.Set("user", user)
			return next(c)
		}
	}
}

// RequireAuth redirects anonymous requests to the login form. It must run
// after Session.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get("username") == nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}
