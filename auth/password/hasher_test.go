package password

import (
	"errors"
	"testing"
)

// bcrypt cost 4 keeps the adaptive work factor test-friendly.
func testBcrypt() *BcryptHasher { return NewBcryptHasher(WithCost(4)) }

func TestBcryptRoundTrip(t *testing.T) {
	h := testBcrypt()
	digest, err := h.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if digest == "secret-password" {
		t.Fatal("digest must not equal plaintext")
	}
	if err := h.Verify("secret-password", digest); err != nil {
		t.Errorf("Verify() of correct password failed: %v", err)
	}
}

func TestBcryptMismatch(t *testing.T) {
	h := testBcrypt()
	digest, err := h.Hash("secret-password")
	if err != nil {
		t.Fatal(err)
	}
	err = h.Verify("wrong-password", digest)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestBcryptSaltRandomized(t *testing.T) {
	h := testBcrypt()
	a, err := h.Hash("same-input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Hash("same-input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same plaintext must differ (random salt)")
	}
	if err := h.Verify("same-input", a); err != nil {
		t.Errorf("first digest should verify: %v", err)
	}
	if err := h.Verify("same-input", b); err != nil {
		t.Errorf("second digest should verify: %v", err)
	}
}

func TestBcryptOverlongPassword(t *testing.T) {
	h := testBcrypt()
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := h.Hash(string(long)); err == nil {
		t.Error("expected error for password beyond the bcrypt limit")
	}
}

func TestArgon2RoundTrip(t *testing.T) {
	h := NewArgon2Hasher(WithArgon2Memory(8*1024), WithArgon2Time(1))
	digest, err := h.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if err := h.Verify("secret-password", digest); err != nil {
		t.Errorf("Verify() of correct password failed: %v", err)
	}
	if err := h.Verify("other-password", digest); !errors.Is(err, ErrMismatch) {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
}

func TestArgon2MalformedDigest(t *testing.T) {
	h := NewArgon2Hasher()
	err := h.Verify("anything", "$not$a$real$digest")
	if err == nil {
		t.Fatal("expected error for malformed digest")
	}
	if errors.Is(err, ErrMismatch) {
		t.Error("malformed digest must not be reported as a plain mismatch")
	}
}

func TestNewHasherFromConfig(t *testing.T) {
	t.Run("defaults to bcrypt", func(t *testing.T) {
		h := NewHasher(Config{})
		if _, ok := h.(*BcryptHasher); !ok {
			t.Errorf("expected *BcryptHasher, got %T", h)
		}
	})

	t.Run("argon2id selectable", func(t *testing.T) {
		h := NewHasher(Config{Algorithm: AlgorithmArgon2id})
		if _, ok := h.(*Argon2Hasher); !ok {
			t.Errorf("expected *Argon2Hasher, got %T", h)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}

	bad := Config{Algorithm: "md5"}
	if err := bad.Validate(); err == nil {
		t.Error("unsupported algorithm accepted")
	}
}
