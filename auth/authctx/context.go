// Package authctx propagates the authenticated principal through a
// request's context.Context.
//
// The principal is attached exactly once per request by the authentication
// middleware and read by downstream handlers. There is no process-wide
// holder: the context travels with the request and dies with it.
//
// Usage:
//
//	// middleware
//	ctx = authctx.Set(ctx, principal)
//
//	// handler
//	p, ok := authctx.Get(ctx)
package authctx

import (
	"context"
	"errors"

	"github.com/nestora/nestora-api/auth"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var principalKey = contextKey{}

// ErrNoPrincipal is returned when no principal is attached to the context.
var ErrNoPrincipal = errors.New("authctx: no principal in context")

// Set attaches the principal to the context. The authentication middleware
// only calls this when no principal is attached yet; an existing principal
// is never overwritten.
func Set(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// Get retrieves the principal from the context.
// Returns the principal and true if attached, or nil and false otherwise.
func Get(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*auth.Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}

// GetOrError retrieves the principal from the context.
// Returns ErrNoPrincipal if none is attached.
func GetOrError(ctx context.Context) (*auth.Principal, error) {
	p, ok := Get(ctx)
	if !ok {
		return nil, ErrNoPrincipal
	}
	return p, nil
}

// MustGet retrieves the principal from the context.
// Panics if none is attached. Use in handlers behind routes the
// authorization policy already guards.
func MustGet(ctx context.Context) *auth.Principal {
	p, ok := Get(ctx)
	if !ok {
		panic("authctx: principal not found in context")
	}
	return p
}
