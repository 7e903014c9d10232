// Package util provides small parsing and formatting helpers shared
// across the service, such as human-readable size parsing and secret
// masking for log output.
package util
