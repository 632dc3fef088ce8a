package auth

import "errors"

var (
	// ErrUnauthenticated covers every credential failure: missing, malformed,
	// expired, or revoked token, wrong password, inactive user, inactive
	// tenant. Callers surface it as one generic rejection so the response
	// never reveals which check failed.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	ErrNotFound     = errors.New("auth: not found")
	ErrConflict     = errors.New("auth: already exists")
	ErrInvalidInput = errors.New("auth: invalid input")
)
