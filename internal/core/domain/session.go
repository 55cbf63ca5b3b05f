package domain

import "time"

// Session associates an opaque, unguessable token with a username until it
// expires. The username is a weak reference: a session may outlive the
// deletion of its account.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Valid reports whether the session is usable at the given instant. Expiry is
// strict: a session is valid iff now < ExpiresAt.
func (s Session) Valid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
