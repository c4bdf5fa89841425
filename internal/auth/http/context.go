// Package http provides the session endpoints, the bearer authentication
// middleware, and the per-IP rate limiting for unauthenticated auth routes.
package http

import (
	"context"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// principalKey is a context key type for storing authenticated principals.
type principalKey struct{}

// WithPrincipal stores an authenticated principal in the context. Called by
// the authentication middleware after the bearer token verified.
func WithPrincipal(ctx context.Context, principal authDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (principal, true) if one is present, or a zero principal and false
// on unauthenticated requests.
func GetPrincipal(ctx context.Context) (authDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(authDomain.Principal)
	return principal, ok
}
