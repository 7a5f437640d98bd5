// Package metadata stores small key/value records of the CLI session
// (the bearer token and the email it was issued for).
package metadata

import "context"

// Well-known keys.
const (
	KeyToken = "token"
	KeyEmail = "email"
)

type Repository interface {
	// Get returns common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
