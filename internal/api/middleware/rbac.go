package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/domain"
)

// RequireAdmin gates admin-only routes. Anonymous callers and non-admin
// accounts both get 403; the mutation endpoints never redirect. It must run
// after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get("user").(*domain.User)
			if !user.IsAdmin() {
				return c.HTML(http.StatusForbidden, "<h1>Access Denied</h1><p>Admin only.</p>")
			}
			return next(c)
		}
	}
}
