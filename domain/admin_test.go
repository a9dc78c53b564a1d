package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleSatisfies(t *testing.T) {
	assert.True(t, RoleSuperAdmin.Satisfies(RoleWriter))
	assert.True(t, RoleSuperAdmin.Satisfies(RoleSuperAdmin))
	assert.True(t, RoleAdmin.Satisfies(RoleStaff))
	assert.True(t, RoleStaff.Satisfies(RoleWriter))
	assert.True(t, RoleWriter.Satisfies(RoleWriter))

	assert.False(t, RoleWriter.Satisfies(RoleStaff))
	assert.False(t, RoleAdmin.Satisfies(RoleSuperAdmin))
	assert.False(t, Role("root").Satisfies(RoleWriter), "unknown roles satisfy nothing")
	assert.False(t, RoleSuperAdmin.Satisfies(Role("root")), "unknown requirements are never met")
	assert.False(t, Role("").Satisfies(RoleWriter))
}

func TestRoleKnown(t *testing.T) {
	for _, r := range []Role{RoleWriter, RoleStaff, RoleAdmin, RoleSuperAdmin} {
		assert.True(t, r.Known(), "%s", r)
	}
	assert.False(t, Role("root").Known())
	assert.False(t, Role("").Known())
}

func TestAdminIdentityProjection(t *testing.T) {
	admin := &Admin{
		ID:        "adm-1",
		AccountID: "acc-1",
		Email:     "ops@ridgelinepark.com",
		Role:      RoleAdmin,
		IsActive:  true,
	}
	identity := admin.Identity()
	assert.Equal(t, "adm-1", identity.ID)
	assert.Equal(t, "ops@ridgelinepark.com", identity.Email)
	assert.Equal(t, RoleAdmin, identity.Role)
}

func TestAdminPasswordHashNeverSerialized(t *testing.T) {
	admin := Admin{ID: "adm-1", PasswordHash: "$2a$10$secret"}
	body, err := json.Marshal(admin)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
}
