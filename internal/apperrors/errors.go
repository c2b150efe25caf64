package apperrors

import "errors"

// Sentinel errors shared by stores, services and the HTTP layer.
// Handlers map them to status codes; everything else becomes a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("not authorized to perform requested action")
	ErrConflict           = errors.New("conflict")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrUnauthenticated is what the guard returns for any token problem.
	// The token errors below are wrapped alongside it so callers and tests
	// can still tell them apart.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token expired")
	ErrMissingClaim    = errors.New("token missing user_id claim")

	ErrRevocationUnavailable = errors.New("token revocation unavailable")
)
