package domain

import (
	"github.com/google/uuid"
)

// Account-management policy. Decisions depend only on the actor's role and
// whether the target is the actor's own account; no other state is consulted.
// Predicate functions answer yes/no; Require variants return a typed error
// suitable for the HTTP boundary.
//
// Rules:
//   - View, update, change password: the account owner or any admin.
//   - Activate, deactivate, delete: admins only, and never on their own
//     account. A lone admin locking or deleting themselves out is the failure
//     mode this prevents.
//   - Create and list accounts: admins only.

// CanViewUser reports whether actor may read the target account.
func CanViewUser(actor Principal, targetID uuid.UUID) bool {
	return actor.ID == targetID || actor.Role == RoleAdmin
}

// CanUpdateUser reports whether actor may update the target account's profile.
func CanUpdateUser(actor Principal, targetID uuid.UUID) bool {
	return actor.ID == targetID || actor.Role == RoleAdmin
}

// CanChangePassword reports whether actor may change the target account's password.
func CanChangePassword(actor Principal, targetID uuid.UUID) bool {
	return actor.ID == targetID || actor.Role == RoleAdmin
}

// CanSetUserActive reports whether actor may activate or deactivate the target account.
func CanSetUserActive(actor Principal, targetID uuid.UUID) bool {
	return actor.Role == RoleAdmin && actor.ID != targetID
}

// CanDeleteUser reports whether actor may delete the target account.
func CanDeleteUser(actor Principal, targetID uuid.UUID) bool {
	return actor.Role == RoleAdmin && actor.ID != targetID
}

// CanCreateUser reports whether actor may create accounts.
func CanCreateUser(actor Principal) bool {
	return actor.Role == RoleAdmin
}

// CanListUsers reports whether actor may list accounts.
func CanListUsers(actor Principal) bool {
	return actor.Role == RoleAdmin
}

// RequireViewUser returns ErrInsufficientRole unless CanViewUser holds.
func RequireViewUser(actor Principal, targetID uuid.UUID) error {
	if !CanViewUser(actor, targetID) {
		return ErrInsufficientRole
	}
	return nil
}

// RequireUpdateUser returns ErrInsufficientRole unless CanUpdateUser holds.
func RequireUpdateUser(actor Principal, targetID uuid.UUID) error {
	if !CanUpdateUser(actor, targetID) {
		return ErrInsufficientRole
	}
	return nil
}

// RequireChangePassword returns ErrInsufficientRole unless CanChangePassword holds.
func RequireChangePassword(actor Principal, targetID uuid.UUID) error {
	if !CanChangePassword(actor, targetID) {
		return ErrInsufficientRole
	}
	return nil
}

// RequireSetUserActive distinguishes the self case so clients see why a
// request by an admin on their own account was refused.
func RequireSetUserActive(actor Principal, targetID uuid.UUID) error {
	if actor.ID == targetID {
		return ErrSelfActionNotAllowed
	}
	if actor.Role != RoleAdmin {
		return ErrInsufficientRole
	}
	return nil
}

// RequireDeleteUser distinguishes the self case like RequireSetUserActive.
func RequireDeleteUser(actor Principal, targetID uuid.UUID) error {
	if actor.ID == targetID {
		return ErrSelfActionNotAllowed
	}
	if actor.Role != RoleAdmin {
		return ErrInsufficientRole
	}
	return nil
}

// RequireCreateUser returns ErrInsufficientRole unless CanCreateUser holds.
func RequireCreateUser(actor Principal) error {
	if !CanCreateUser(actor) {
		return ErrInsufficientRole
	}
	return nil
}

// RequireListUsers returns ErrInsufficientRole unless CanListUsers holds.
func RequireListUsers(actor Principal) error {
	if !CanListUsers(actor) {
		return ErrInsufficientRole
	}
	return nil
}

// RequireAdmin returns ErrInsufficientRole unless the actor is an admin. Used
// by catalog write operations that have no per-target ownership notion.
func RequireAdmin(actor Principal) error {
	if actor.Role != RoleAdmin {
		return ErrInsufficientRole
	}
	return nil
}
