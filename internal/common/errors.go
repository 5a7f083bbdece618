// Package common defines shared constants and sentinel errors used across
// client and server layers of the chat application. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrorEmailExists = errors.New("email already registered")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Login failures are deliberately indistinguishable: the same error is
	// returned for an unknown email and for a wrong password.
	ErrorInvalidCredentials = errors.New("invalid email or password")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")

	// Client-local conversation store errors.
	ErrLastConversation  = errors.New("cannot delete the last conversation")
	ErrPersistenceCorrupt = errors.New("persisted state is corrupt")
)
