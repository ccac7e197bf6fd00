package access

import "strings"

// Tier is a role's hierarchy level. Lower means more authority.
type Tier int

const (
	TierGodAdmin Tier = iota
	TierSuperAdmin
	TierAdmin
	TierManager
	TierStaff

	// TierUnknown is reported for role names the catalog does not define.
	TierUnknown Tier = -1
)

// String returns the tier label used in 403 payloads.
func (t Tier) String() string {
	switch t {
	case TierGodAdmin:
		return "GOD_ADMIN"
	case TierSuperAdmin:
		return "SUPER_ADMIN"
	case TierAdmin:
		return "ADMIN"
	case TierManager:
		return "MANAGER"
	case TierStaff:
		return "STAFF"
	}
	return "UNKNOWN"
}

// Valid reports whether t is one of the five defined tiers.
func (t Tier) Valid() bool {
	return t >= TierGodAdmin && t <= TierStaff
}

// Department narrows STAFF-tier permissions with an overlay.
type Department string

const (
	DeptFinance     Department = "Finance Department"
	DeptFrontDesk   Department = "Front Desk"
	DeptBooking     Department = "Booking Agent"
	DeptGatekeeper  Department = "Gatekeeper"
	DeptSupport     Department = "Support"
	DeptTechSupport Department = "Tech Support"
	DeptServiceBoy  Department = "Service Boy"
	DeptMaintenance Department = "Maintenance"
	DeptKitchen     Department = "Kitchen"
)

// Departments lists the STAFF departments in role-code order.
func Departments() []Department {
	return []Department{
		DeptFinance, DeptFrontDesk, DeptBooking, DeptGatekeeper, DeptSupport,
		DeptTechSupport, DeptServiceBoy, DeptMaintenance, DeptKitchen,
	}
}

// ParseDepartment resolves a department name. "Finance" is accepted as a short
// alias of "Finance Department".
func ParseDepartment(name string) (Department, bool) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "Finance") {
		return DeptFinance, true
	}
	for _, d := range Departments() {
		if strings.EqualFold(name, string(d)) {
			return d, true
		}
	}
	return "", false
}

// System role names.
const (
	RoleGodAdmin   = "GOD Admin"
	RoleSuperAdmin = "Super Admin"
	RoleHotelAdmin = "Hotel Admin"
	RoleManager    = "Manager"
	RoleStaff      = "Staff"
)

// Role is either a system tier (GOD/Super/Hotel Admin, Manager, bare Staff) or a
// department role, which always sits in the STAFF tier and carries its department.
type Role struct {
	Name       string     `json:"name"`
	Tier       Tier       `json:"level"`
	Department Department `json:"department,omitempty"`
}

// IsDepartment reports whether r is a STAFF department role.
func (r Role) IsDepartment() bool {
	return r.Department != ""
}

func systemRole(name string, tier Tier) Role {
	return Role{Name: name, Tier: tier}
}

func departmentRole(d Department) Role {
	return Role{Name: string(d), Tier: TierStaff, Department: d}
}
