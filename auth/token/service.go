// Package token issues and validates the signed bearer tokens that carry a
// user's identity between requests.
//
// Tokens are compact JWS structures (header.claims.signature) signed with a
// process-wide HMAC secret. Claims are never read from a token whose
// signature has not been verified. There is no server-side revocation: a
// token stays valid until its embedded expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a malformed token or a signature that does not
// verify against the service secret.
var ErrInvalidToken = errors.New("token: invalid token")

// ErrExpired indicates a structurally valid, correctly signed token whose
// expiry has passed.
var ErrExpired = errors.New("token: expired")

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Extra     map[string]any
}

// Service issues and validates bearer tokens.
type Service struct {
	cfg Config
	key []byte
	now func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithClock overrides the time source. Used by tests to cross the expiry
// boundary without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a token service. Configuration problems (most notably
// a missing secret) are reported here so the process fails at startup, not
// on the first request.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	key, err := cfg.keyBytes()
	if err != nil {
		return nil, fmt.Errorf("token: %w", err)
	}
	s := &Service{cfg: cfg, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return time.Duration(s.cfg.TTLMillis) * time.Millisecond
}

// Issue builds and signs a token for the subject. Claims are
// {sub, iat: now, exp: now+TTL} plus any extra claims; extra claims cannot
// override the registered ones.
func (s *Service) Issue(subject string, extra map[string]any) (string, error) {
	now := s.now()
	claims := gojwt.MapClaims{}
	for k, v := range extra {
		claims[k] = v
	}
	claims["sub"] = subject
	claims["iat"] = gojwt.NewNumericDate(now)
	claims["exp"] = gojwt.NewNumericDate(now.Add(s.TTL()))

	tok := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature and registered claims of a token and returns
// its content. Expired tokens yield ErrExpired; anything else that fails
// verification yields ErrInvalidToken.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	return s.parse(tokenString, true)
}

// Validate reports whether the token verifies, is unexpired, and carries
// the expected subject. It never returns an error: every failure mode maps
// to false, which is what the request filter needs.
func (s *Service) Validate(tokenString, expectedSubject string) bool {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return false
	}
	return claims.Subject == expectedSubject
}

// ExtractSubject verifies the token signature and returns the sub claim.
// The subject of an unverified token is never exposed.
func (s *Service) ExtractSubject(tokenString string) (string, error) {
	claims, err := s.parse(tokenString, true)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// ExtractExpiry verifies the token signature and returns the exp claim.
// Expiry itself is not enforced here, so the expiry of an already-expired
// (but authentically signed) token can still be inspected.
func (s *Service) ExtractExpiry(tokenString string) (time.Time, error) {
	claims, err := s.parse(tokenString, false)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt.IsZero() {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}
	return claims.ExpiresAt, nil
}

func (s *Service) parse(tokenString string, validateClaims bool) (*Claims, error) {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithTimeFunc(s.now),
	}
	if !validateClaims {
		opts = append(opts, gojwt.WithoutClaimsValidation())
	}

	mapClaims := gojwt.MapClaims{}
	tok, err := gojwt.ParseWithClaims(tokenString, mapClaims, s.keyFunc, opts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claimsFromMap(mapClaims), nil
}

// keyFunc rejects any signing method other than the configured one before
// handing out the verification key.
func (s *Service) keyFunc(tok *gojwt.Token) (interface{}, error) {
	expected := s.cfg.signingMethod()
	if tok.Method.Alg() != expected.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", tok.Method.Alg())
	}
	return s.key, nil
}

func claimsFromMap(m gojwt.MapClaims) *Claims {
	c := &Claims{Extra: make(map[string]any)}
	for k, v := range m {
		switch k {
		case "sub":
			if sub, ok := v.(string); ok {
				c.Subject = sub
			}
		case "iat":
			c.IssuedAt = numericDate(v)
		case "exp":
			c.ExpiresAt = numericDate(v)
		default:
			c.Extra[k] = v
		}
	}
	return c
}

func numericDate(v any) time.Time {
	f, ok := v.(float64)
	if !ok {
		return time.Time{}
	}
	return time.Unix(int64(f), 0)
}
