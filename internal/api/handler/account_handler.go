package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/domain"
	"github.com/homelab/authgate/internal/core/ports"
)

type AccountHandler struct {
	auth ports.AuthService
}

func NewAccountHandler(auth ports.AuthService) *AccountHandler {
	return &AccountHandler{auth: auth}
}

// Form renders the change-password page for the authenticated caller.
func (h *AccountHandler) Form(c echo.Context) error {
	return renderPage(c, http.StatusOK, "account", pageData{User: currentUser(c)})
}

type changePasswordRequest struct {
	CurrentPassword string `form:"current_password"`
	NewPassword     string `form:"new_password"`
	ConfirmPassword string `form:"confirm_password"`
}

// ChangePassword rehashes the caller's password. The store enforces the check
// order (wrong current password, then mismatch, then weakness); each failure
// is rendered inline on the form. Existing sessions stay valid.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	user := currentUser(c)

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return renderPage(c, http.StatusOK, "account", pageData{User: user, Error: "invalid form submission"})
	}

	err := h.auth.ChangePassword(c.Request().Context(), user.Username,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	switch {
	case err == nil:
		return renderPage(c, http.StatusOK, "account", pageData{User: user, Success: "Password updated successfully"})
	case errors.Is(err, domain.ErrWrongPassword),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrWeakPassword):
		return renderPage(c, http.StatusOK, "account", pageData{User: user, Error: err.Error()})
	default:
		return err
	}
}
