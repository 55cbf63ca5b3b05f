package ports

import (
	"context"

	"github.com/homelab/authgate/internal/core/domain"
)

// UserStore owns the persisted username → account mapping. Implementations
// are the sole writers of their backing document and serialize every
// read-modify-write sequence internally.
type UserStore interface {
	Find(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// Authenticate verifies a plaintext password against the stored hash.
	// Unknown usernames and wrong passwords are indistinguishable to the
	// caller: both return ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Add creates an account. Checks run in reference order: duplicate
	// username, then username length, then password length, then role.
	Add(ctx context.Context, username, password, role string) (*domain.User, error)

	// Delete removes an account. Removing the requesting account is refused.
	Delete(ctx context.Context, username, requestedBy string) error

	// ChangePassword rehashes with a fresh salt. Checks run in order: current
	// password, confirmation match, new password length.
	ChangePassword(ctx context.Context, username, current, next, confirm string) error
}
