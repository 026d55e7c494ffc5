// Package common defines shared constants and sentinel errors used across
// the todo service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration conflicts. Kept separate so the signup form can tell the
	// user which field collided.
	ErrUsernameTaken = errors.New("username already registered")
	ErrEmailTaken    = errors.New("email already registered")

	// ErrInvalidCredentials covers both "unknown user" and "wrong password".
	// A single value, so callers cannot tell the two causes apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors (invalid signature/structure vs. past expiry).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
