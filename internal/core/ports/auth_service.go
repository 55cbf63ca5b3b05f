package ports

import (
	"context"

	"github.com/homelab/authgate/internal/core/domain"
)

// AuthService is the request-facing decision surface. It orchestrates the
// credential and session stores and holds no persistent state of its own.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error

	// Verify resolves a token without mutating any store.
	Verify(ctx context.Context, token string) (string, error)

	// CurrentUser resolves a token to a full account record. A session whose
	// account has been deleted resolves to ErrNoSession.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)

	ListUsers(ctx context.Context) ([]*domain.User, error)
	AddUser(ctx context.Context, username, password, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, username, requestedBy string) error
	ChangePassword(ctx context.Context, username, current, next, confirm string) error
}
