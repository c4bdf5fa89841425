package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is the persisted record behind a refresh credential. Only the
// SHA-256 hash of the signed token is stored; the raw value never touches the
// database.
//
// A record is either active (revoked_at null, expires_at in the future) or
// terminal. Rotation flips RevokedAt and sets ReplacedBy to exactly one
// successor; those are the only mutations. Expired records are swept by the
// clean-expired-tokens command, but expiry is always also checked on lookup.
type RefreshToken struct {
	ID         uuid.UUID
	TokenHash  string
	UserID     uuid.UUID
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	ReplacedBy *uuid.UUID
	CreatedAt  time.Time
}

// Active reports whether the record can still be consumed at the given time.
func (t *RefreshToken) Active(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}
