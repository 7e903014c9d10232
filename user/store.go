package user

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no identity matches the lookup key.
// Expected on every login with an unknown email; not a system failure.
var ErrNotFound = errors.New("user: not found")

// ErrDuplicateEmail is returned by Save when the email is already taken.
// Uniqueness is enforced at the store boundary.
var ErrDuplicateEmail = errors.New("user: email already in use")

// Store is the credential store contract. Email lookups are exact and
// case-sensitive; callers must not normalize case before calling.
type Store interface {
	// FindByEmail looks up an identity by its unique email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID looks up an identity by its numeric ID.
	FindByID(ctx context.Context, id int64) (*User, error)

	// Save persists a new identity or updates an existing one (matched by
	// ID). CreatedAt is set once on first save; UpdatedAt refreshes on
	// every save.
	Save(ctx context.Context, u *User) (*User, error)
}
