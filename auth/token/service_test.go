package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService(Config{Secret: testSecret}, opts...)
	if err != nil {
		t.Fatalf("NewService() error: %v", err)
	}
	return svc
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Issue("a@b.com", nil)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if parts := strings.Split(tok, "."); len(parts) != 3 {
		t.Fatalf("expected compact three-part token, got %d parts", len(parts))
	}
	if !svc.Validate(tok, "a@b.com") {
		t.Error("freshly issued token should validate for its subject")
	}
	if svc.Validate(tok, "someone-else@b.com") {
		t.Error("token must not validate for a different subject")
	}
}

func TestExtractSubjectRoundTrip(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Issue("a@b.com", map[string]any{"role": "USER"})
	if err != nil {
		t.Fatal(err)
	}
	sub, err := svc.ExtractSubject(tok)
	if err != nil {
		t.Fatalf("ExtractSubject() error: %v", err)
	}
	if sub != "a@b.com" {
		t.Errorf("expected subject a@b.com, got %q", sub)
	}

	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Extra["role"] != "USER" {
		t.Errorf("extra claim lost: %v", claims.Extra)
	}
}

func TestExtraClaimsCannotOverrideSubject(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Issue("real@b.com", map[string]any{"sub": "forged@b.com"})
	if err != nil {
		t.Fatal(err)
	}
	sub, err := svc.ExtractSubject(tok)
	if err != nil {
		t.Fatal(err)
	}
	if sub != "real@b.com" {
		t.Errorf("registered sub claim was overridden: %q", sub)
	}
}

func TestExpiry(t *testing.T) {
	now := time.Now()
	clock := now
	svc, err := NewService(
		Config{Secret: testSecret, TTLMillis: 1000},
		WithClock(func() time.Time { return clock }),
	)
	if err != nil {
		t.Fatal(err)
	}

	tok, err := svc.Issue("a@b.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !svc.Validate(tok, "a@b.com") {
		t.Error("token should validate before expiry")
	}

	clock = now.Add(2 * time.Second)
	if svc.Validate(tok, "a@b.com") {
		t.Error("token must not validate after expiry")
	}
	if _, err := svc.Parse(tok); !errors.Is(err, ErrExpired) {
		t.Errorf("expected ErrExpired, got %v", err)
	}

	// Expiry of an authentically signed token stays inspectable.
	exp, err := svc.ExtractExpiry(tok)
	if err != nil {
		t.Fatalf("ExtractExpiry() on expired token: %v", err)
	}
	if got, want := exp.Unix(), now.Add(time.Second).Unix(); got != want {
		t.Errorf("expected expiry %d, got %d", want, got)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService(t)
	other, err := NewService(Config{Secret: "another-secret-another-secret-xx"})
	if err != nil {
		t.Fatal(err)
	}

	tok, err := other.Issue("a@b.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if svc.Validate(tok, "a@b.com") {
		t.Error("token signed with a different secret must not validate")
	}
	if _, err := svc.ExtractSubject(tok); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ExtractSubject must fail with ErrInvalidToken, got %v", err)
	}
}

func TestTamperedPayloadRejected(t *testing.T) {
	svc := newTestService(t)
	tok, err := svc.Issue("a@b.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(tok, ".")
	payload := []byte(parts[1])
	// Flip one payload character to a different base64url character.
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if svc.Validate(tampered, "a@b.com") {
		t.Error("tampered payload must invalidate the token")
	}
	if _, err := svc.ExtractSubject(tampered); err == nil {
		t.Error("ExtractSubject must not return a subject from a tampered token")
	}
}

func TestMalformedInput(t *testing.T) {
	svc := newTestService(t)
	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d", "%%%.%%%.%%%"} {
		if svc.Validate(bad, "a@b.com") {
			t.Errorf("malformed input %q validated", bad)
		}
		if _, err := svc.ExtractSubject(bad); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ExtractSubject(%q): expected ErrInvalidToken, got %v", bad, err)
		}
	}
}

func TestBase64Secret(t *testing.T) {
	raw := []byte(testSecret)
	encoded := base64.StdEncoding.EncodeToString(raw)

	b64svc, err := NewService(Config{Secret: encoded, SecretBase64: true})
	if err != nil {
		t.Fatal(err)
	}
	rawsvc := newTestService(t)

	// Both services hold the same key bytes, so tokens interchange.
	tok, err := b64svc.Issue("a@b.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !rawsvc.Validate(tok, "a@b.com") {
		t.Error("base64-configured and raw-configured secrets should be equivalent")
	}
}

func TestMissingSecretIsFatal(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected NewService to fail without a secret")
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Secret: testSecret}
	cfg.ApplyDefaults()
	if cfg.Method != HS256 {
		t.Errorf("expected default method HS256, got %s", cfg.Method)
	}
	if cfg.TTLMillis != 86_400_000 {
		t.Errorf("expected default TTL 86400000ms, got %d", cfg.TTLMillis)
	}
}

func TestCrossAlgorithmRejected(t *testing.T) {
	hs512, err := NewService(Config{Secret: testSecret, Method: HS512})
	if err != nil {
		t.Fatal(err)
	}
	hs256 := newTestService(t)

	tok, err := hs512.Issue("a@b.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if hs256.Validate(tok, "a@b.com") {
		t.Error("HS512 token must not validate on an HS256 service")
	}
}
