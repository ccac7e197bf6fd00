package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanCreateRole(t *testing.T) {
	p := NewCreationPolicy(NewCatalog())

	tests := []struct {
		actor  string
		target string
		want   bool
	}{
		{RoleHotelAdmin, RoleManager, true},
		{RoleHotelAdmin, RoleHotelAdmin, false},
		{RoleHotelAdmin, RoleSuperAdmin, false},
		{RoleHotelAdmin, "Kitchen", true},
		{RoleManager, "Front Desk", true},
		{RoleManager, RoleManager, false},
		{RoleManager, RoleHotelAdmin, false},
		{"Front Desk", RoleManager, false},
		{"Front Desk", "Kitchen", true},
		{RoleSuperAdmin, RoleGodAdmin, false},
		{RoleSuperAdmin, RoleSuperAdmin, true},
		{RoleSuperAdmin, RoleHotelAdmin, true},
		{RoleGodAdmin, RoleGodAdmin, true},
		{RoleGodAdmin, "Maintenance", true},
		// rule 5: unmatched actors are not rejected by this policy
		{"Night Auditor", RoleManager, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.CanCreateRole(tt.actor, tt.target), "%s -> %s", tt.actor, tt.target)
	}
}

func TestCheckCreateRoleReportsTiers(t *testing.T) {
	p := NewCreationPolicy(NewCatalog())

	err := p.CheckCreateRole(RoleManager, RoleManager)
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "ADMIN", denied.Required)
	assert.Equal(t, "MANAGER", denied.Current)

	err = p.CheckCreateRole(RoleHotelAdmin, RoleHotelAdmin)
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "SUPER_ADMIN", denied.Required)

	assert.NoError(t, p.CheckCreateRole(RoleHotelAdmin, RoleManager))
}

func TestCreatableRoles(t *testing.T) {
	p := NewCreationPolicy(NewCatalog())

	var names []string
	for _, r := range p.CreatableRoles(RoleManager) {
		names = append(names, r.Name)
		assert.Equal(t, TierStaff, r.Tier)
	}
	assert.Contains(t, names, "Front Desk")
	assert.NotContains(t, names, RoleManager)

	assert.Len(t, p.CreatableRoles(RoleGodAdmin), len(NewCatalog().Roles()))
}
