package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/domain"
)

// currentUser returns the account resolved by the session middleware, or nil
// for anonymous requests.
func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}

// sessionToken returns the raw session cookie value, or "" when absent.
func sessionToken(c echo.Context) string {
	cookie, err := c.Cookie("session")
	if err != nil {
		return ""
	}
	return cookie.Value
}
