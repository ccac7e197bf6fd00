package identifier

import (
	"strings"

	"go-hotel-pms/internal/access"
)

// UnknownRole is returned by RoleNameFromCode for codes outside the table.
const UnknownRole = "Unknown"

// roleCodes is the fixed role-code table embedded in user identifiers. Codes are
// wire-visible across services and must never be renumbered.
var roleCodes = []struct {
	code int
	name string
}{
	{1, access.RoleGodAdmin},
	{2, access.RoleSuperAdmin},
	{3, access.RoleHotelAdmin},
	{4, access.RoleManager},
	{5, string(access.DeptFinance)},
	{6, string(access.DeptFrontDesk)},
	{7, string(access.DeptBooking)},
	{8, string(access.DeptGatekeeper)},
	{9, string(access.DeptSupport)},
	{10, string(access.DeptTechSupport)},
	{11, string(access.DeptServiceBoy)},
	{12, string(access.DeptMaintenance)},
	{13, string(access.DeptKitchen)},
}

// RoleCode maps a role name to its identifier code. An unknown role is a
// programmer error and yields a *ConfigurationError.
func RoleCode(role string) (int, error) {
	name := strings.TrimSpace(role)
	for _, rc := range roleCodes {
		if strings.EqualFold(rc.name, name) {
			return rc.code, nil
		}
	}
	return 0, &ConfigurationError{Role: role}
}

// RoleNameFromCode is the reverse lookup. Callers must check for UnknownRole.
func RoleNameFromCode(code int) string {
	for _, rc := range roleCodes {
		if rc.code == code {
			return rc.name
		}
	}
	return UnknownRole
}

// HasRoleCode reports whether role can be embedded in a user identifier.
func HasRoleCode(role string) bool {
	_, err := RoleCode(role)
	return err == nil
}
