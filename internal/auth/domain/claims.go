package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccessClaims is the payload carried by a signed token. It is ephemeral:
// created at issuance, reconstructed at verification, never persisted. There
// is no revocation for access tokens; the short TTL is the only mitigation.
type AccessClaims struct {
	// UserID is the subject of the token.
	UserID uuid.UUID
	// Username is the subject's login name. Empty on refresh tokens.
	Username string
	// Role is the subject's authorization role. Empty on refresh tokens.
	Role Role
	// TokenID identifies the refresh record backing a refresh token. Zero on
	// access tokens.
	TokenID uuid.UUID
	// IssuedAt is when the token was signed.
	IssuedAt time.Time
	// ExpiresAt is when the token stops verifying.
	ExpiresAt time.Time
}

// Principal is the immutable identity attached to a request context after the
// bearer token verified. Downstream authorization decisions read it; nothing
// writes it back.
type Principal struct {
	ID       uuid.UUID
	Username string
	Role     Role
}
