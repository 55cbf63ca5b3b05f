package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/homelab/authgate/internal/core/domain"
	"github.com/homelab/authgate/internal/core/ports"
)

// AuthService orchestrates the credential and session stores. All hashing and
// persistence happens inside the stores; this layer only sequences them and
// shapes the answers the HTTP surface needs.
type AuthService struct {
	users    ports.UserStore
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(users ports.UserStore, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

// Login verifies the credentials and issues a session on success.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return sess, nil
}

// Logout destroys the session behind token. Idempotent: unknown and empty
// tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Verify is the forward-auth decision: it resolves token to a username
// without touching any store state. The username is reported even when the
// account has since been deleted; sessions are only revoked by logout or
// expiry.
func (s *AuthService) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrNoSession
	}
	return s.sessions.Resolve(ctx, token)
}

// CurrentUser resolves token to a full account record for flows that need the
// role. A dangling session, one whose account was deleted, counts as no
// session here.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	username, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Find(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *AuthService) AddUser(ctx context.Context, username, password, role string) (*domain.User, error) {
	user, err := s.users.Add(ctx, username, password, role)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", username).Str("role", role).Msg("user created")
	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, username, requestedBy string) error {
	if err := s.users.Delete(ctx, username, requestedBy); err != nil {
		return err
	}
	// Outstanding sessions for the deleted account keep resolving until they
	// expire; see the session store contract.
	s.log.Info().Str("username", username).Str("requested_by", requestedBy).Msg("user deleted")
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username, current, next, confirm string) error {
	return s.users.ChangePassword(ctx, username, current, next, confirm)
}
