package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrWeakUsername       = errors.New("username must be at least 3 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDelete         = errors.New("cannot delete your own account")
	ErrNoSession          = errors.New("no valid session")
	ErrForbidden          = errors.New("access forbidden")
)
