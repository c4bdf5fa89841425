// Package domain defines authentication and authorization domain models:
// token claims, refresh-token records, roles, and the account policy engine.
package domain

// Role is the coarse authorization role carried by every user account.
type Role string

const (
	// RoleAdmin can manage any account and all catalogs.
	RoleAdmin Role = "admin"

	// RoleOperator can view and update their own account and work with documents.
	RoleOperator Role = "operator"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOperator
}

// TokenKind distinguishes the two credential types issued by the token codec.
type TokenKind string

const (
	// TokenKindAccess is the short-lived credential presented on every request.
	TokenKindAccess TokenKind = "access"

	// TokenKindRefresh is the longer-lived credential used solely to mint a new
	// access credential.
	TokenKindRefresh TokenKind = "refresh"
)
