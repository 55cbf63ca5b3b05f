package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/homelab/authgate/internal/core/domain"
	"github.com/homelab/authgate/internal/core/ports"
)

type AdminHandler struct {
	auth ports.AuthService
}

func NewAdminHandler(auth ports.AuthService) *AdminHandler {
	return &AdminHandler{auth: auth}
}

// ListUsers renders the user-management page.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	return h.renderUsers(c, pageData{})
}

type addUserRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role" validate:"omitempty,oneof=user admin"`
}

// AddUser creates an account. The credential store enforces the check order
// (duplicate, short username, short password); failures render inline.
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return h.renderUsers(c, pageData{Error: "invalid form submission"})
	}
	if err := c.Validate(&req); err != nil {
		return h.renderUsers(c, pageData{Error: err.Error()})
	}
	if req.Role == "" {
		req.Role = domain.RoleUser
	}

	_, err := h.auth.AddUser(c.Request().Context(), req.Username, req.Password, req.Role)
	switch {
	case err == nil:
		return h.renderUsers(c, pageData{Success: fmt.Sprintf("User %q added", req.Username)})
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrWeakUsername),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidRole):
		return h.renderUsers(c, pageData{Error: err.Error()})
	default:
		return err
	}
}

type deleteUserRequest struct {
	Username string `form:"username"`
}

// DeleteUser removes an account. Deleting the acting admin is refused; the
// target's outstanding sessions are left to expire on their own.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return h.renderUsers(c, pageData{Error: "invalid form submission"})
	}

	err := h.auth.DeleteUser(c.Request().Context(), req.Username, currentUser(c).Username)
	switch {
	case err == nil:
		return h.renderUsers(c, pageData{Success: fmt.Sprintf("User %q deleted", req.Username)})
	case errors.Is(err, domain.ErrSelfDelete), errors.Is(err, domain.ErrUserNotFound):
		return h.renderUsers(c, pageData{Error: err.Error()})
	default:
		return err
	}
}

// renderUsers re-lists accounts so the page always shows current state.
func (h *AdminHandler) renderUsers(c echo.Context, data pageData) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	data.User = currentUser(c)
	data.Users = users
	return renderPage(c, http.StatusOK, "users", data)
}
