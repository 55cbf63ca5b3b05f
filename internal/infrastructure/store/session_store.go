package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"maps"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/homelab/authgate/internal/api/metrics"
	"github.com/homelab/authgate/internal/core/domain"
)

const (
	sessionsFile = "sessions.json"

	// tokenBytes gives 256 bits of entropy per token; collisions are treated
	// as negligible.
	tokenBytes = 32
)

// sessionRecord is the on-disk shape of one session; the document is a flat
// mapping keyed by token.
type sessionRecord struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires"`
}

// SessionStore is the file-backed session store. It is the sole writer of
// sessions.json. Expiry is enforced lazily: Get evicts an expired record on
// first access, and load sweeps leftovers from the previous run. No
// background sweeper exists or is needed for correctness.
type SessionStore struct {
	mu       sync.RWMutex
	path     string
	ttl      time.Duration
	sessions map[string]sessionRecord
	now      func() time.Time
	log      zerolog.Logger
}

// NewSessionStore loads persisted sessions from dir, drops every record that
// is no longer valid, and persists the swept result if anything changed.
func NewSessionStore(dir string, ttl time.Duration, log zerolog.Logger) (*SessionStore, error) {
	s := &SessionStore{
		path:     filepath.Join(dir, sessionsFile),
		ttl:      ttl,
		sessions: make(map[string]sessionRecord),
		now:      time.Now,
		log:      log.With().Str("store", "sessions").Logger(),
	}

	if _, err := readDocument(s.path, &s.sessions); err != nil {
		return nil, err
	}

	now := s.now()
	swept := 0
	for token, rec := range s.sessions {
		if !now.Before(rec.ExpiresAt) {
			delete(s.sessions, token)
			swept++
		}
	}
	if swept > 0 {
		if err := s.persist(s.sessions); err != nil {
			return nil, err
		}
		s.log.Info().Int("count", swept).Msg("swept expired sessions")
	}

	return s, nil
}

// Create issues a new token for username, valid for the store's TTL, and
// persists it before returning.
func (s *SessionStore) Create(_ context.Context, username string) (*domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := sessionRecord{Username: username, ExpiresAt: s.now().Add(s.ttl)}
	next := maps.Clone(s.sessions)
	next[token] = rec
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.sessions = next

	metrics.SessionsCreatedTotal.Inc()
	return &domain.Session{Token: token, Username: username, ExpiresAt: rec.ExpiresAt}, nil
}

// Get returns the username behind token if the session is still valid. An
// expired-but-present record is deleted and the store persisted before the
// not-found answer is returned, so a second Get gives the same result.
func (s *SessionStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.sessions[token]
	if !ok {
		return "", domain.ErrNoSession
	}
	if s.now().Before(rec.ExpiresAt) {
		return rec.Username, nil
	}

	next := maps.Clone(s.sessions)
	delete(next, token)
	if err := s.persist(next); err != nil {
		return "", err
	}
	s.sessions = next

	metrics.SessionsEvictedTotal.WithLabelValues("expired").Inc()
	return "", domain.ErrNoSession
}

// Resolve answers like Get but never mutates: expired records are left for
// the next Get or the load-time sweep. The forward-auth probe runs on every
// proxied request and must stay side-effect free.
func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[token]
	if !ok || !s.now().Before(rec.ExpiresAt) {
		return "", domain.ErrNoSession
	}
	return rec.Username, nil
}

// Delete removes token. Absent tokens are a no-op and trigger no write.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return nil
	}

	next := maps.Clone(s.sessions)
	delete(next, token)
	if err := s.persist(next); err != nil {
		return err
	}
	s.sessions = next

	metrics.SessionsEvictedTotal.WithLabelValues("logout").Inc()
	return nil
}

func (s *SessionStore) persist(sessions map[string]sessionRecord) error {
	if err := writeDocument(s.path, "sessions", sessions); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("durable write failed; sessions document may be stale")
		return err
	}
	return nil
}

// newToken returns a URL-safe token carrying tokenBytes of entropy from the
// system CSPRNG.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
