package domain

import (
	"github.com/allisson/staffdocs/internal/errors"
)

// Authentication and authorization errors. All wrap a generic sentinel so the
// HTTP boundary can map them to a status code; auth handlers additionally
// attach machine-readable codes for the cases clients branch on.
var (
	// ErrInvalidCredentials covers unknown user, wrong password and inactive
	// account alike, so responses never reveal which one it was.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrTokenExpired indicates an untampered token past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrInvalidToken indicates a malformed token, a bad signature, or a kind mismatch.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid token")

	// ErrRefreshTokenNotFound indicates no refresh record matches the presented token.
	ErrRefreshTokenNotFound = errors.Wrap(errors.ErrUnauthorized, "refresh token not found")

	// ErrRefreshTokenExpired indicates the refresh record exists but its expiry passed.
	ErrRefreshTokenExpired = errors.Wrap(errors.ErrUnauthorized, "refresh token expired")

	// ErrRefreshTokenReused indicates an already-rotated refresh token was
	// presented again: a replay signal. Consuming code must revoke the whole
	// rotation chain before surfacing this error.
	ErrRefreshTokenReused = errors.Wrap(errors.ErrUnauthorized, "refresh token reuse detected")

	// ErrSelfActionNotAllowed indicates an account operation that may never
	// target the acting user's own account (deactivate, delete).
	ErrSelfActionNotAllowed = errors.Wrap(errors.ErrForbidden, "action not allowed on own account")

	// ErrInsufficientRole indicates the actor's role does not permit the operation.
	ErrInsufficientRole = errors.Wrap(errors.ErrForbidden, "insufficient role")

	// ErrSigningSecretMissing indicates the token codec was constructed without
	// a usable signing secret. This is a deployment error, not a request error.
	ErrSigningSecretMissing = errors.New("token signing secret is not configured")
)
