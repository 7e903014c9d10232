// Package authz decides what a request path requires before its handler runs.
//
// A Policy is an ordered table of (pattern, Requirement) rules evaluated
// first-match-wins. Patterns support two wildcard suffixes: "/**" matches the
// path itself and everything under it, "/*" matches exactly one extra path
// segment. A path matching no rule falls back to the policy's default, which
// is RequireAuthenticated unless configured otherwise.
//
// The package has no HTTP dependencies. The server middleware consults a
// Policy and handles the response side (pass through, 401, and so on).
//
// Usage:
//
//	policy := authz.NewPolicy(
//	    authz.Rule{Pattern: "/api/auth/**", Requirement: authz.Public},
//	    authz.Rule{Pattern: "/healthcheck", Requirement: authz.Public},
//	)
//
//	policy.Evaluate("/api/rentals") // authz.RequireAuthenticated
package authz
