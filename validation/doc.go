// Package validation validates request payloads before they reach a service.
//
// Struct tag validation is the primary path: request DTOs carry
// `validate:"..."` tags and handlers call Validate before dispatching.
// Failures come back as an errors.AppError with INVALID_INPUT, a combined
// message, and per-field details ready for the response envelope.
//
//	type LoginRequest struct {
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
//
// A small fluent Validator remains for checks that tags cannot express.
package validation
