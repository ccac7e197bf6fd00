package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogLevels(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		role string
		want Tier
	}{
		{RoleGodAdmin, TierGodAdmin},
		{RoleSuperAdmin, TierSuperAdmin},
		{RoleHotelAdmin, TierAdmin},
		{RoleManager, TierManager},
		{RoleStaff, TierStaff},
		{"Front Desk", TierStaff},
		{"kitchen", TierStaff},
	}
	for _, tt := range tests {
		level, ok := c.LevelOf(tt.role)
		require.True(t, ok, tt.role)
		assert.Equal(t, tt.want, level, tt.role)
	}

	_, ok := c.LevelOf("Night Auditor")
	assert.False(t, ok)
}

func TestEveryRoleGrantsSomething(t *testing.T) {
	c := NewCatalog()
	for _, r := range c.Roles() {
		_, ok := c.LevelOf(r.Name)
		require.True(t, ok)
		assert.NotEmpty(t, c.PermissionsOf(r.Name), r.Name)
	}
}

func TestGodAdminIsSupersetOfEveryRole(t *testing.T) {
	c := NewCatalog()
	god := c.PermissionsOf(RoleGodAdmin)

	assert.Len(t, god, len(AllPermissions()))
	for _, r := range c.Roles() {
		assert.True(t, god.Contains(c.PermissionsOf(r.Name)), r.Name)
		for _, d := range Departments() {
			assert.True(t, god.Contains(c.PermissionsFor(r.Name, string(d))), "%s/%s", r.Name, d)
		}
	}
}

func TestTierNarrowing(t *testing.T) {
	c := NewCatalog()

	super := c.PermissionsOf(RoleSuperAdmin)
	assert.True(t, super.Has(PermHotelDelist))
	assert.False(t, super.Has(PermHotelDelete))

	admin := c.PermissionsOf(RoleHotelAdmin)
	assert.False(t, admin.Has(PermHotelDelist))
	assert.False(t, admin.Has(PermHotelDelete))
	assert.True(t, admin.Has(PermHotelDeactivate))

	manager := c.PermissionsOf(RoleManager)
	assert.False(t, manager.Has(PermHotelUpdate))
	assert.True(t, manager.Has(PermUserCreate))

	staff := c.PermissionsOf(RoleStaff)
	assert.ElementsMatch(t, []string{"booking.read", "hotel.read", "room.read"}, staff.Strings())
}

func TestDepartmentOverlay(t *testing.T) {
	c := NewCatalog()

	finance := c.PermissionsOf(string(DeptFinance))
	assert.True(t, finance.Has(PermReportsFinancial))
	assert.True(t, finance.Contains(c.StaffBaseline()))

	frontDesk := c.PermissionsFor(RoleStaff, "Front Desk")
	for _, p := range []Permission{PermBookingCreate, PermBookingUpdate, PermBookingDelete} {
		assert.True(t, frontDesk.Has(p), p)
	}

	// department only narrows STAFF-tier roles
	assert.Equal(t, c.PermissionsOf(RoleManager), c.PermissionsFor(RoleManager, "Kitchen"))

	// unknown department keeps the baseline
	assert.Equal(t, c.StaffBaseline(), c.PermissionsFor(RoleStaff, "Spa"))
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := NewCatalog()

	set := c.PermissionsOf(RoleGodAdmin)
	delete(set, PermHotelRead)

	assert.True(t, c.PermissionsOf(RoleGodAdmin).Has(PermHotelRead))
	assert.True(t, c.AllPermissions().Has(PermHotelRead))
}

func TestParseDepartment(t *testing.T) {
	d, ok := ParseDepartment("Finance")
	require.True(t, ok)
	assert.Equal(t, DeptFinance, d)

	d, ok = ParseDepartment(" tech support ")
	require.True(t, ok)
	assert.Equal(t, DeptTechSupport, d)

	_, ok = ParseDepartment("Spa")
	assert.False(t, ok)
}
