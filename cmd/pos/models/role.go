package models

import "fmt"

// Role is a user's role. Permissions are attached to roles explicitly
// below; nothing else in the codebase compares role strings.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCashier Role = "cashier"
	RoleViewer  Role = "viewer"
)

// Permission is a single allowed operation
type Permission string

const (
	PermCatalogWrite   Permission = "catalog:write"
	PermCheckout       Permission = "checkout"
	PermInventoryWrite Permission = "inventory:write"
	PermEntityWrite    Permission = "entity:write"
	PermViewContacts   Permission = "entity:view_contacts"
	PermExpenseWrite   Permission = "expense:write"
	PermUserAdmin      Permission = "user:admin"
	PermAuditRead      Permission = "audit:read"
	PermInsightsRead   Permission = "insights:read"
)

// rolePermissions is the single source of truth for what each role may do
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermCatalogWrite:   true,
		PermCheckout:       true,
		PermInventoryWrite: true,
		PermEntityWrite:    true,
		PermViewContacts:   true,
		PermExpenseWrite:   true,
		PermUserAdmin:      true,
		PermAuditRead:      true,
		PermInsightsRead:   true,
	},
	RoleManager: {
		PermCatalogWrite:   true,
		PermCheckout:       true,
		PermInventoryWrite: true,
		PermEntityWrite:    true,
		PermViewContacts:   true,
		PermExpenseWrite:   true,
		PermInsightsRead:   true,
	},
	RoleCashier: {
		PermCheckout:    true,
		PermEntityWrite: true,
	},
	RoleViewer: {},
}

// ParseRole validates a stored role string
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleCashier, RoleViewer:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Allows reports whether the role grants the permission
func (r Role) Allows(p Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	return perms[p]
}

// Session identifies the authenticated caller for the duration of one
// request. It is built by the session middleware and passed explicitly to
// services; there is no ambient global user state.
type Session struct {
	UserID      string
	DisplayName string
	Role        Role
}

// Require returns ErrForbidden unless the session's role grants p
func (s Session) Require(p Permission) error {
	if !s.Role.Allows(p) {
		return ErrForbidden
	}
	return nil
}
