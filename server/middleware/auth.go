package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/nestora/nestora-api/auth"
	"github.com/nestora/nestora-api/auth/authctx"
	"github.com/nestora/nestora-api/auth/token"
	"github.com/nestora/nestora-api/authz"
	apperrors "github.com/nestora/nestora-api/errors"
	"github.com/nestora/nestora-api/logger"
	"github.com/nestora/nestora-api/observability"
)

const bearerScheme = "Bearer "

// TokenParser verifies a compact token and returns its claims.
// token.Service satisfies this interface.
type TokenParser interface {
	Parse(tokenString string) (*token.Claims, error)
}

// IdentityResolver maps a verified token subject to a Principal.
// auth.IdentityLoader satisfies this interface.
type IdentityResolver interface {
	Load(ctx context.Context, subject string) (*auth.Principal, error)
}

// BearerAuthOption customizes the authentication middleware.
type BearerAuthOption func(*bearerAuth)

// WithAuthMetrics records token verification latency and rejections.
func WithAuthMetrics(m *observability.AuthMetrics) BearerAuthOption {
	return func(b *bearerAuth) {
		b.metrics = m
	}
}

type bearerAuth struct {
	metrics *observability.AuthMetrics
}

// BearerAuth returns middleware that authenticates requests carrying a Bearer
// token. It runs on every request, before any authorization decision.
//
// Requests without an Authorization header, or with a non-Bearer scheme, pass
// through untouched: whether that is acceptable is decided later by the route
// policy. A presented token, however, is always verified. A malformed or
// tampered token ends the request with 403, an expired one with 401, and a
// token whose subject no longer exists with 401. On success the resolved
// Principal is attached to the request context exactly once; a request that
// already carries a principal is passed through unchanged.
func BearerAuth(parser TokenParser, resolver IdentityResolver, log *logger.Logger, opts ...BearerAuthOption) Middleware {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithComponent("auth_filter")

	var b bearerAuth
	for _, opt := range opts {
		opt(&b)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := authctx.Get(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, bearerScheme) {
				next.ServeHTTP(w, r)
				return
			}

			rawToken := header[len(bearerScheme):]
			start := time.Now()
			claims, err := parser.Parse(rawToken)
			if b.metrics != nil {
				b.metrics.RecordTokenVerification(r.Context(), time.Since(start))
			}
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					log.Debug("Token expired", map[string]interface{}{
						"path":  r.URL.Path,
						"token": logger.MaskToken(rawToken),
					})
					b.reject(r, "expired")
					writeError(w, apperrors.TokenExpired())
					return
				}
				b.reject(r, "invalid")
				log.Warn("Token rejected", map[string]interface{}{
					"path":  r.URL.Path,
					"token": logger.MaskToken(rawToken),
				})
				writeError(w, apperrors.InvalidToken())
				return
			}

			principal, err := resolver.Load(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, auth.ErrIdentityNotFound) {
					log.Warn("Token subject no longer exists", map[string]interface{}{
						"path": r.URL.Path,
					})
					writeError(w, apperrors.Unauthorized("unknown token subject"))
					return
				}
				writeError(w, apperrors.DatabaseError(err))
				return
			}

			ctx := authctx.Set(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePolicy returns middleware that enforces the route policy: a path
// requiring authentication is rejected with 401 when no principal was
// attached by BearerAuth. Public paths pass through either way.
func RequirePolicy(policy *authz.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if policy.Evaluate(r.URL.Path) == authz.RequireAuthenticated {
				if _, ok := authctx.Get(r.Context()); !ok {
					writeError(w, apperrors.Unauthorized("authentication required"))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (b *bearerAuth) reject(r *http.Request, reason string) {
	if b.metrics != nil {
		b.metrics.RecordTokenRejected(r.Context(), reason)
	}
}
