package authz

import "strings"

// MatchPath checks if a route pattern matches a request path.
//
//   - "/api/auth/**" matches "/api/auth", "/api/auth/login", and any depth below
//   - "/uploads/*"   matches "/uploads/x" but not "/uploads/a/b"
//   - "/healthcheck" matches only "/healthcheck"
//
// Trailing slashes on the path are ignored, so "/api/auth/" matches the same
// rules as "/api/auth".
func MatchPath(pattern, path string) bool {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}

	if base, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}

	if base, ok := strings.CutSuffix(pattern, "/*"); ok {
		rest, found := strings.CutPrefix(path, base+"/")
		return found && rest != "" && !strings.Contains(rest, "/")
	}

	return path == pattern
}
