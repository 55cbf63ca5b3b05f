package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role belongs to the enumerated role set.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an account held by the credential store. The username is the
// primary key; the password hash is an opaque record produced by the password
// package and never contains plaintext.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// IsAdmin is the single capability check used by every admin-gated operation.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
