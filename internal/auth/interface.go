// Package auth holds the pluggable primitives of the account service:
// password hashing and session token encoding.
package auth

import "nalevel/internal/domain/models/account"

// PasswordHasher turns plain passwords into stored hashes and checks them
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash
	Verify(hash, password string) bool
}

// SessionCodec encodes session claims into an opaque token and back.
// Decode only checks integrity; expiry is the caller's decision.
type SessionCodec interface {
	Encode(claims account.SessionClaims) (string, error)
	Decode(token string) (*account.SessionClaims, error)
}
