package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
// This is the single middleware type for the entire server. Applying
// middleware at the handler level (rather than on the Gin engine) means it
// covers every mounted route, including non-Gin handlers.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
