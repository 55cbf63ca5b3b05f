package store

import (
	"context"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/homelab/authgate/internal/core/domain"
	"github.com/homelab/authgate/internal/pkg/password"
)

const (
	usersFile = "users.json"

	seedUsername = "admin"

	minUsernameLen = 3
	minPasswordLen = 8
)

// userRecord is the on-disk shape of one account; the document is a flat
// mapping keyed by username.
type userRecord struct {
	PasswordHash string `json:"password"`
	Role         string `json:"role"`
}

func (r userRecord) toDomain(username string) *domain.User {
	return &domain.User{
		Username:     username,
		PasswordHash: r.PasswordHash,
		Role:         r.Role,
	}
}

// UserStore is the file-backed credential store. It is the sole writer of
// users.json; every read-modify-write sequence runs under mu. Mutations
// persist the next state before committing it, so the visible mapping never
// gets ahead of the durable one.
type UserStore struct {
	mu    sync.Mutex
	path  string
	users map[string]userRecord
	log   zerolog.Logger
}

// NewUserStore loads the persisted accounts from dir. When no document exists
// yet it seeds exactly one admin account with seedPassword and persists it
// immediately; an existing document is never reseeded.
func NewUserStore(dir, seedPassword string, log zerolog.Logger) (*UserStore, error) {
	s := &UserStore{
		path:  filepath.Join(dir, usersFile),
		users: make(map[string]userRecord),
		log:   log.With().Str("store", "users").Logger(),
	}

	exists, err := readDocument(s.path, &s.users)
	if err != nil {
		return nil, err
	}
	if !exists {
		hash, err := password.Hash(seedPassword)
		if err != nil {
			return nil, err
		}
		s.users[seedUsername] = userRecord{PasswordHash: hash, Role: domain.RoleAdmin}
		if err := s.persist(s.users); err != nil {
			return nil, err
		}
		s.log.Warn().Str("username", seedUsername).
			Msg("seeded default admin account; rotate its password before exposing the service")
	}

	return s, nil
}

func (s *UserStore) Find(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return rec.toDomain(username), nil
}

// List returns all accounts ordered by username.
func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, username := range slices.Sorted(maps.Keys(s.users)) {
		users = append(users, s.users[username].toDomain(username))
	}
	return users, nil
}

func (s *UserStore) Authenticate(_ context.Context, username, plaintext string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(plaintext, rec.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return rec.toDomain(username), nil
}

func (s *UserStore) Add(_ context.Context, username, plaintext, role string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, domain.ErrUserExists
	}
	if len(username) < minUsernameLen {
		return nil, domain.ErrWeakUsername
	}
	if len(plaintext) < minPasswordLen {
		return nil, domain.ErrWeakPassword
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	next := maps.Clone(s.users)
	next[username] = userRecord{PasswordHash: hash, Role: role}
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.users = next

	return next[username].toDomain(username), nil
}

func (s *UserStore) Delete(_ context.Context, username, requestedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == requestedBy {
		return domain.ErrSelfDelete
	}
	if _, ok := s.users[username]; !ok {
		return domain.ErrUserNotFound
	}

	next := maps.Clone(s.users)
	delete(next, username)
	if err := s.persist(next); err != nil {
		return err
	}
	s.users = next

	return nil
}

func (s *UserStore) ChangePassword(_ context.Context, username, current, newPassword, confirm string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[username]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !password.Verify(current, rec.PasswordHash) {
		return domain.ErrWrongPassword
	}
	if newPassword != confirm {
		return domain.ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrWeakPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	next := maps.Clone(s.users)
	next[username] = userRecord{PasswordHash: hash, Role: rec.Role}
	if err := s.persist(next); err != nil {
		return err
	}
	s.users = next

	return nil
}

func (s *UserStore) persist(users map[string]userRecord) error {
	if err := writeDocument(s.path, "users", users); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("durable write failed; users document may be stale")
		return err
	}
	return nil
}
