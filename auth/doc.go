// Package auth implements credential verification and session issuance.
//
// It ties together the password and token subpackages around a user store:
// Register hashes a plaintext password and persists a new account, Login
// verifies credentials and issues a signed token, and the IdentityLoader
// resolves a token subject back into a Principal for request handling.
//
// The package deliberately knows nothing about HTTP. Transports live in the
// server package and call into Service; the Principal travels through request
// context via the authctx subpackage.
//
// Usage:
//
//	hasher, _ := password.NewHasher(cfg.Auth.Password)
//	tokens, _ := token.NewService(cfg.Auth.JWT)
//	svc := auth.NewService(store, hasher, tokens, log)
//
//	resp, err := svc.Register(ctx, auth.RegisterRequest{
//	    Email:    "jane@example.com",
//	    Name:     "Jane",
//	    Password: "s3cret-enough",
//	})
package auth
