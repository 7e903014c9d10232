package token

import (
	"encoding/base64"
	"errors"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported HMAC signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// defaultTTLMillis is 24 hours, the lifetime historically configured for
// this service's sessions.
const defaultTTLMillis = 86_400_000

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key. Required; its absence is a fatal
	// startup error.
	Secret string `mapstructure:"secret"`

	// SecretBase64 indicates Secret holds a standard-base64 encoded key
	// rather than raw bytes.
	SecretBase64 bool `mapstructure:"secret_base64"`

	// TTLMillis is the token lifetime in milliseconds (default: 86400000).
	TTLMillis int64 `mapstructure:"ttl_ms"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `mapstructure:"method"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTLMillis == 0 {
		c.TTLMillis = defaultTTLMillis
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return fmt.Errorf("unsupported signing method: %s", c.Method)
	}
	if c.TTLMillis < 0 {
		return fmt.Errorf("ttl_ms must be non-negative (got: %d)", c.TTLMillis)
	}
	if c.SecretBase64 {
		if _, err := base64.StdEncoding.DecodeString(c.Secret); err != nil {
			return fmt.Errorf("secret is not valid base64: %w", err)
		}
	}
	return nil
}

// keyBytes decodes the signing key.
func (c *Config) keyBytes() ([]byte, error) {
	if c.SecretBase64 {
		return base64.StdEncoding.DecodeString(c.Secret)
	}
	return []byte(c.Secret), nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
