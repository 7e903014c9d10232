// Package password provides one-way password hashing and verification.
//
// It defines a Hasher interface with two implementations: bcrypt (the
// default, matching what the credential store has historically held) and
// argon2id. Both embed a random salt in the digest, so hashing the same
// plaintext twice yields different digests.
//
// Usage:
//
//	hasher := password.NewBcryptHasher()
//	digest, err := hasher.Hash("my-password")
//	if err := hasher.Verify("my-password", digest); err != nil { ... }
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Verify when the plaintext does not match the
// digest. A mismatch is an expected outcome, not a system failure; callers
// translate it into their own uniform credential error.
var ErrMismatch = errors.New("password: plaintext does not match digest")

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	// Hash returns a salted, adaptive digest of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify checks the plaintext against the digest using the salt and
	// parameters embedded in it. Returns nil on match, ErrMismatch on
	// mismatch, and another error only for malformed digests.
	Verify(plaintext, digest string) error
}

// --- Bcrypt implementation ---

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	cost int
}

// BcryptOption configures the bcrypt hasher.
type BcryptOption func(*BcryptHasher)

// WithCost sets the bcrypt cost parameter (default: 12, range: 4-31).
func WithCost(cost int) BcryptOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher creates a bcrypt-based password hasher.
func NewBcryptHasher(opts ...BcryptOption) *BcryptHasher {
	h := &BcryptHasher{cost: 12}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", errors.New("password: maximum length is 72 bytes (bcrypt limit)")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("password: verify: %w", err)
	}
}
