package credstore

import (
	"context"

	"worldmark/internal/model"
)

// Store defines the interface for credential persistence: one secret
// hash per username plus a small user-data record.
type Store interface {
	// SaveCredential stores the password hash for a username.
	SaveCredential(ctx context.Context, username, hash string) error

	// GetCredential returns the stored hash.
	// Returns model.ErrUserNotFound if the username is unknown.
	GetCredential(ctx context.Context, username string) (string, error)

	// Exists reports whether the username is registered.
	Exists(ctx context.Context, username string) (bool, error)

	// SaveUser stores the user-data record (created, last_login).
	SaveUser(ctx context.Context, user *model.User) error

	// GetUser returns the user-data record.
	// Returns model.ErrUserNotFound if the username is unknown.
	GetUser(ctx context.Context, username string) (*model.User, error)
}
