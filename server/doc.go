// Package server owns the HTTP surface of the rental marketplace API.
//
// It wires a Gin engine behind an http.ServeMux wrapped with h2c, so the
// same port serves HTTP/1.1 and cleartext HTTP/2. Ambient middleware
// (recovery, request IDs, CORS, body limits, request logging) and the
// authentication filter are applied at the handler level, outside Gin, so
// they cover every mounted route.
//
// Request flow for a protected route:
//
//	Recovery → RequestID → CORS → BodySizeLimit → RequestLogger
//	  → BearerAuth (verify token, attach principal)
//	  → RequirePolicy (reject anonymous access to protected paths)
//	  → Gin handler
//
// # Endpoints
//
//   - POST /api/auth/register: create an account, returns a token
//   - POST /api/auth/login: verify credentials, returns a token
//   - GET  /api/auth/me: profile of the authenticated principal
//   - GET  /healthcheck: liveness and database reachability
//   - GET  /: service banner
package server
