package auth

import "testing"

func TestNormalizeRole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty defaults to user", "", "ROLE_USER"},
		{"whitespace defaults to user", "   ", "ROLE_USER"},
		{"bare role gets prefix", "USER", "ROLE_USER"},
		{"admin gets prefix", "ADMIN", "ROLE_ADMIN"},
		{"already prefixed unchanged", "ROLE_ADMIN", "ROLE_ADMIN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRole(tt.in); got != tt.want {
				t.Errorf("NormalizeRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeRoleIdempotent(t *testing.T) {
	for _, in := range []string{"", "USER", "ADMIN", "ROLE_USER", "ROLE_X"} {
		once := NormalizeRole(in)
		twice := NormalizeRole(once)
		if once != twice {
			t.Errorf("NormalizeRole not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestPrincipalHasRole(t *testing.T) {
	p := &Principal{UserID: 1, Email: "a@b.com", Role: "ROLE_ADMIN"}
	if !p.HasRole("ADMIN") {
		t.Error("expected HasRole(ADMIN) to match ROLE_ADMIN")
	}
	if !p.HasRole("ROLE_ADMIN") {
		t.Error("expected HasRole(ROLE_ADMIN) to match")
	}
	if p.HasRole("USER") {
		t.Error("did not expect HasRole(USER) to match ROLE_ADMIN")
	}
}
