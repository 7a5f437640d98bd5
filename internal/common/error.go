// Package common defines shared constants and sentinel errors used across
// client and server layers of the job tracker. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication errors. ErrorUnauthenticated means no credentials were
	// supplied at all, the other two mean credentials were supplied but rejected.
	ErrorUnauthenticated    = errors.New("authentication required")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
)
