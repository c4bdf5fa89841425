// Package service provides authentication services: the signed token codec
// and password hashing/verification.
package service

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// TokenCodec signs and verifies the two token kinds. Implementations must
// keep the error distinction stable: an untampered token past expiry fails
// with ErrTokenExpired, everything else with ErrInvalidToken.
type TokenCodec interface {
	// IssueAccess signs a short-lived access token for the principal.
	IssueAccess(principal authDomain.Principal, ttl time.Duration) (string, error)
	// IssueRefresh signs a refresh token bound to a persisted refresh record
	// via tokenID (the jti claim).
	IssueRefresh(userID uuid.UUID, tokenID uuid.UUID, ttl time.Duration) (string, error)
	// Verify checks signature, expiry and kind, and reconstructs the claims.
	Verify(token string, kind authDomain.TokenKind) (*authDomain.AccessClaims, error)
}

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	// Hash derives a password hash suitable for storage.
	Hash(plainPassword string) (string, error)
	// Compare performs a constant-time comparison of a plain password against
	// a stored hash. It never reports why a mismatch happened.
	Compare(plainPassword string, hashedPassword string) bool
}
