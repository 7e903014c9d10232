// Package logger provides structured logging for the nestora backend
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("auth")
//	log.Info("login succeeded", logger.Fields("email", email))
package logger
