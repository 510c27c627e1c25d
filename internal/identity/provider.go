// Package identity wraps the hosted identity provider. User accounts live
// there; the store only keeps a cognito_username back-reference.
package identity

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned when the provider has no account for the
// given username.
var ErrAccountNotFound = errors.New("identity account not found")

// Provider is the identity-service surface the user flows need. The Cognito
// client satisfies it; tests substitute a fake.
type Provider interface {
	// CreateAccount provisions a suppressed-invite account with a temporary
	// password and returns the username and the one-time password.
	CreateAccount(ctx context.Context, email, name string) (username, tempPassword string, err error)
	// UpdateAccount pushes changed email/name attributes to the account.
	UpdateAccount(ctx context.Context, username, email, name string) error
	// DeleteAccount removes the account. Deleting a missing account returns
	// ErrAccountNotFound.
	DeleteAccount(ctx context.Context, username string) error
	// AccountExists reports whether the account is still present.
	AccountExists(ctx context.Context, username string) (bool, error)
	// ListUsernames returns every account username in the pool.
	ListUsernames(ctx context.Context) ([]string, error)
}
