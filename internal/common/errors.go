// Package common defines shared constants and sentinel errors used across
// the layers of the task-list service. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors.
	ErrorValidation      = errors.New("validation error")
	ErrorInvalidIdentity = errors.New("invalid identity")

	// Auth errors (token verification sub-causes; all collapse to a
	// uniform unauthorized response at the HTTP boundary).
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("malformed token")
)
