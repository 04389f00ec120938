// Package common defines shared constants and sentinel errors used across
// the client and server layers of EventHub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Validation errors.
	ErrValidation = errors.New("validation error")
	ErrInvalidID  = errors.New("invalid id")

	// Conflict errors.
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrAlreadyRegistered  = errors.New("already registered")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
