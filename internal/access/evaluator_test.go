package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDelistIsSuperAdminGated(t *testing.T) {
	e := NewEvaluator(NewCatalog(), nil)

	assert.False(t, e.HasPermission(RoleHotelAdmin, "", PermHotelDelist))
	assert.True(t, e.HasPermission(RoleSuperAdmin, "", PermHotelDelist))
	assert.True(t, e.HasPermission(RoleGodAdmin, "", PermHotelDelist))
}

func TestEffectivePermissionsDepartment(t *testing.T) {
	e := NewEvaluator(NewCatalog(), nil)

	assert.True(t, e.HasPermission("Front Desk", "", PermBookingCreate))
	assert.False(t, e.HasPermission("Kitchen", "", PermBookingCreate))
	assert.True(t, e.HasPermission(RoleStaff, "Finance", PermReportsFinancial))
	assert.False(t, e.HasPermission(RoleStaff, "", PermReportsFinancial))
}

func TestUnknownRoleAndDepartmentFailOpenToBaseline(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := NewCatalog()
	e := NewEvaluator(c, zap.New(core))

	assert.Equal(t, c.StaffBaseline(), e.EffectivePermissions("Night Auditor", ""))
	assert.Equal(t, c.StaffBaseline(), e.EffectivePermissions("Front Desk", "Spa"))
	assert.True(t, e.HasPermission("Night Auditor", "", PermHotelRead))
	assert.False(t, e.HasPermission("Night Auditor", "", PermBookingCreate))

	require.GreaterOrEqual(t, logs.Len(), 2)
	assert.Equal(t, "unknown role, falling back to staff baseline", logs.All()[0].Message)
}

func TestCheckReturnsDeniedError(t *testing.T) {
	e := NewEvaluator(NewCatalog(), nil)

	require.NoError(t, e.Check(RoleManager, "", PermUserCreate))

	err := e.Check(RoleManager, "", PermHotelDelist)
	var denied *DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, "hotel.delist", denied.Required)
	assert.Equal(t, RoleManager, denied.Current)
}
