package ports

import (
	"context"

	"github.com/homelab/authgate/internal/core/domain"
)

// SessionStore owns the persisted token → session mapping. Every mutation is
// durably written before the call returns.
type SessionStore interface {
	// Create issues a fresh unguessable token for username.
	Create(ctx context.Context, username string) (*domain.Session, error)

	// Get returns the session's username if the token exists and is
	// unexpired. An expired-but-present record is deleted on access.
	Get(ctx context.Context, token string) (string, error)

	// Resolve answers the same question as Get without mutating the store.
	// The forward-auth probe uses it so verification stays side-effect free.
	Resolve(ctx context.Context, token string) (string, error)

	// Delete removes a session. Idempotent; absent tokens are a no-op.
	Delete(ctx context.Context, token string) error
}
