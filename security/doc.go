// Package security holds the TLS configuration for serving the API over
// HTTPS. When a certificate pair is configured the server wraps its listener
// with TLS; otherwise it serves cleartext with h2c.
//
//	cfg := security.TLSConfig{
//	    CertFile: "/etc/nestora/tls/cert.pem",
//	    KeyFile:  "/etc/nestora/tls/key.pem",
//	}
//	tlsConfig, err := cfg.Build()
package security
