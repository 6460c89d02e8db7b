package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "manager", "cashier", "viewer"} {
		role, err := ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	_, err := ParseRole("root")
	assert.Error(t, err)
	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleAdmin.Allows(PermUserAdmin))
	assert.True(t, RoleAdmin.Allows(PermAuditRead))

	assert.True(t, RoleManager.Allows(PermCatalogWrite))
	assert.True(t, RoleManager.Allows(PermViewContacts))
	assert.False(t, RoleManager.Allows(PermUserAdmin))
	assert.False(t, RoleManager.Allows(PermAuditRead))

	assert.True(t, RoleCashier.Allows(PermCheckout))
	assert.True(t, RoleCashier.Allows(PermEntityWrite))
	assert.False(t, RoleCashier.Allows(PermViewContacts))
	assert.False(t, RoleCashier.Allows(PermInventoryWrite))

	assert.False(t, RoleViewer.Allows(PermCheckout))
	assert.False(t, RoleViewer.Allows(PermEntityWrite))
}

func TestSessionRequire(t *testing.T) {
	admin := Session{UserID: "a", Role: RoleAdmin}
	assert.NoError(t, admin.Require(PermUserAdmin))

	viewer := Session{UserID: "v", Role: RoleViewer}
	assert.ErrorIs(t, viewer.Require(PermCheckout), ErrForbidden)

	// Unknown role grants nothing
	ghost := Session{UserID: "g", Role: Role("ghost")}
	assert.ErrorIs(t, ghost.Require(PermCheckout), ErrForbidden)
}
