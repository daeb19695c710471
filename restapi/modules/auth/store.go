package auth

import (
	"context"

	"github.com/ortelius/cms-auth/model"
)

// Store is the credential store the auth flow reads and writes.
//
// Lookups that find nothing return an apperror.NotFound error. Insert
// returns apperror.DuplicateIdentifier when the email is already taken,
// including when the store's unique index rejects a concurrent insert.
type Store interface {
	// FindByEmail returns the user without the password hash
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindCredentialsByEmail returns the user including the password hash.
	// Only signin uses it.
	FindCredentialsByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByID returns the user without the password hash
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindAccessByID returns only id, role and status
	FindAccessByID(ctx context.Context, id string) (*model.Access, error)
	Insert(ctx context.Context, user *model.User) error
}
