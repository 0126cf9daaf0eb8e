package util

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrEmailRegistered    = errors.New("user exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrModuleNotFound     = errors.New("module not found")
	ErrInvalidModule      = errors.New("module has no quiz questions")

	ErrAuthMissing   = errors.New("missing Authorization header")
	ErrAuthMalformed = errors.New("invalid Authorization format")
	ErrTokenInvalid  = errors.New("invalid token")
	// ErrTokenExpired matches ErrTokenInvalid with errors.Is.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrTokenInvalid)

	ErrStoreConflict = errors.New("snapshot was modified concurrently")
)

// IsAuthError reports whether err is one of the bearer credential errors.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthMissing) ||
		errors.Is(err, ErrAuthMalformed) ||
		errors.Is(err, ErrTokenInvalid)
}
