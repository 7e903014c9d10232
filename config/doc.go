// Package config loads service configuration from YAML files, .env files,
// and environment variables, in increasing order of precedence.
//
// The root App struct composes the per-package configs; each section owns
// its own ApplyDefaults and Validate. Validation of the signing secret is
// fatal at startup, never deferred to request time.
package config
