package auth

import "strings"

// RolePrefix is the conventional prefix carried by every normalized role.
const RolePrefix = "ROLE_"

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and its subject resolved against the store.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

// NormalizeRole maps a stored role attribute to its canonical form.
//
// An empty role falls back to the baseline user role. A role that already
// carries the ROLE_ prefix is returned unchanged, so the function is
// idempotent: NormalizeRole(NormalizeRole(r)) == NormalizeRole(r).
func NormalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = "USER"
	}
	if strings.HasPrefix(role, RolePrefix) {
		return role
	}
	return RolePrefix + role
}

// HasRole reports whether the principal carries the given role. The wanted
// role may be given with or without the ROLE_ prefix.
func (p *Principal) HasRole(role string) bool {
	return p.Role == NormalizeRole(role)
}
