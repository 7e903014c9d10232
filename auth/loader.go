package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestora/nestora-api/user"
)

// ErrIdentityNotFound is returned by IdentityLoader when the token subject
// does not map to any stored account.
var ErrIdentityNotFound = errors.New("auth: identity not found")

// IdentityLoader resolves a verified token subject into a Principal.
// The subject is the account email, as placed into tokens by Service.
type IdentityLoader struct {
	store user.Store
}

// NewIdentityLoader creates a loader backed by the given store.
func NewIdentityLoader(store user.Store) *IdentityLoader {
	return &IdentityLoader{store: store}
}

// Load looks up the account for subject and builds its Principal. The role
// attribute is normalized on every load, so callers always see the canonical
// ROLE_ form regardless of what the store returned.
func (l *IdentityLoader) Load(ctx context.Context, subject string) (*Principal, error) {
	u, err := l.store.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("auth: loading identity: %w", err)
	}
	return &Principal{
		UserID: u.ID,
		Email:  u.Email,
		Role:   NormalizeRole(u.Role),
	}, nil
}
