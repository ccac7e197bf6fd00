package access

import "strings"

// Catalog is the immutable role table: hierarchy levels, tier grants and STAFF
// department overlays. Build it once with NewCatalog and share it; all methods
// are safe for concurrent use.
type Catalog struct {
	roles    []Role
	byName   map[string]Role
	grants   map[Tier]PermissionSet
	overlays map[Department]PermissionSet
	all      PermissionSet
}

// NewCatalog builds the default hotel role catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		byName:   make(map[string]Role),
		grants:   make(map[Tier]PermissionSet),
		overlays: make(map[Department]PermissionSet),
		all:      NewPermissionSet(allPermissions...),
	}

	c.add(systemRole(RoleGodAdmin, TierGodAdmin))
	c.add(systemRole(RoleSuperAdmin, TierSuperAdmin))
	c.add(systemRole(RoleHotelAdmin, TierAdmin))
	c.add(systemRole(RoleManager, TierManager))
	c.add(systemRole(RoleStaff, TierStaff))
	for _, d := range Departments() {
		c.add(departmentRole(d))
	}

	c.grants[TierGodAdmin] = c.all
	c.grants[TierSuperAdmin] = NewPermissionSet(superAdminGrants...)
	c.grants[TierAdmin] = NewPermissionSet(hotelAdminGrants...)
	c.grants[TierManager] = NewPermissionSet(managerGrants...)
	c.grants[TierStaff] = NewPermissionSet(staffGrants...)

	for d, extra := range departmentOverlays {
		c.overlays[d] = NewPermissionSet(extra...)
	}
	return c
}

func (c *Catalog) add(r Role) {
	c.roles = append(c.roles, r)
	c.byName[strings.ToLower(r.Name)] = r
}

// Role looks up a role by display name (case-insensitive).
func (c *Catalog) Role(name string) (Role, bool) {
	r, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// Roles returns all roles, highest authority first.
func (c *Catalog) Roles() []Role {
	out := make([]Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// LevelOf returns the hierarchy level of a role name. ok is false for unknown names.
func (c *Catalog) LevelOf(name string) (Tier, bool) {
	r, ok := c.Role(name)
	if !ok {
		return TierUnknown, false
	}
	return r.Tier, true
}

// PermissionsOf returns the grant set of a role. Department roles include their
// own overlay. Unknown names yield an empty set, which callers must treat as deny.
func (c *Catalog) PermissionsOf(name string) PermissionSet {
	r, ok := c.Role(name)
	if !ok {
		return PermissionSet{}
	}
	return c.permissions(r, r.Department)
}

// PermissionsFor returns the grant set of a role for a user in the given
// department. The department only matters for STAFF-tier roles; an empty
// department falls back to the role's own, an unknown one to the STAFF baseline.
func (c *Catalog) PermissionsFor(name string, department string) PermissionSet {
	r, ok := c.Role(name)
	if !ok {
		return PermissionSet{}
	}
	if r.Tier != TierStaff || strings.TrimSpace(department) == "" {
		return c.permissions(r, r.Department)
	}
	d, _ := ParseDepartment(department)
	return c.permissions(r, d)
}

func (c *Catalog) permissions(r Role, d Department) PermissionSet {
	base := c.grants[r.Tier]
	if r.Tier != TierStaff {
		return base.Clone()
	}
	if overlay, ok := c.overlays[d]; ok {
		return base.Union(overlay)
	}
	return base.Clone()
}

// StaffBaseline returns the STAFF grant set without any department overlay.
func (c *Catalog) StaffBaseline() PermissionSet {
	return c.grants[TierStaff].Clone()
}

// Overlay returns the extra tokens a department adds to the STAFF baseline.
func (c *Catalog) Overlay(d Department) (PermissionSet, bool) {
	set, ok := c.overlays[d]
	if !ok {
		return nil, false
	}
	return set.Clone(), true
}

// AllPermissions returns the union of every defined token.
func (c *Catalog) AllPermissions() PermissionSet {
	return c.all.Clone()
}

var superAdminGrants = []Permission{
	PermHotelRead, PermHotelCreate, PermHotelUpdate, PermHotelDeactivate, PermHotelDelist,
	PermVendorRead, PermVendorCreate, PermVendorUpdate, PermVendorDelete,
	PermUserRead, PermUserCreate, PermUserUpdate, PermUserDelete, PermRoleAssign,
	PermBookingRead, PermBookingCreate, PermBookingUpdate, PermBookingDelete,
	PermRoomRead, PermRoomCreate, PermRoomUpdate, PermRoomDelete,
	PermGuestCheckIn, PermGuestCheckOut,
	PermReportsRead, PermReportsFinancial, PermPaymentRead, PermPaymentProcess,
	PermSupportRead, PermSupportUpdate, PermMaintenanceRead, PermMaintenanceUpdate,
	PermHousekeepingRead, PermHousekeepingUpdate, PermInventoryRead, PermInventoryUpdate,
	PermOrderRead, PermOrderUpdate,
	PermAuditRead, PermDashboardView, PermSystemDiagnostics,
}

// Hotel Admin runs one hotel: no delist, no delete, no vendor management.
var hotelAdminGrants = []Permission{
	PermHotelRead, PermHotelUpdate, PermHotelDeactivate,
	PermUserRead, PermUserCreate, PermUserUpdate, PermUserDelete, PermRoleAssign,
	PermBookingRead, PermBookingCreate, PermBookingUpdate, PermBookingDelete,
	PermRoomRead, PermRoomCreate, PermRoomUpdate, PermRoomDelete,
	PermGuestCheckIn, PermGuestCheckOut,
	PermReportsRead, PermReportsFinancial, PermPaymentRead, PermPaymentProcess,
	PermSupportRead, PermSupportUpdate, PermMaintenanceRead, PermMaintenanceUpdate,
	PermHousekeepingRead, PermHousekeepingUpdate, PermInventoryRead, PermInventoryUpdate,
	PermOrderRead, PermOrderUpdate,
	PermAuditRead, PermDashboardView,
}

// Manager operates the hotel day to day and may staff it.
var managerGrants = []Permission{
	PermHotelRead,
	PermUserRead, PermUserCreate, PermUserUpdate, PermRoleAssign,
	PermBookingRead, PermBookingCreate, PermBookingUpdate, PermBookingDelete,
	PermRoomRead, PermRoomUpdate,
	PermGuestCheckIn, PermGuestCheckOut,
	PermReportsRead, PermPaymentRead,
	PermSupportRead, PermMaintenanceRead, PermHousekeepingRead,
	PermInventoryRead, PermOrderRead,
	PermDashboardView,
}

// STAFF baseline: read-only view of the hotel they work in.
var staffGrants = []Permission{
	PermHotelRead, PermBookingRead, PermRoomRead,
}

var departmentOverlays = map[Department][]Permission{
	DeptFinance:     {PermReportsRead, PermReportsFinancial, PermPaymentRead, PermPaymentProcess},
	DeptFrontDesk:   {PermBookingCreate, PermBookingUpdate, PermBookingDelete, PermGuestCheckIn, PermGuestCheckOut, PermRoomUpdate},
	DeptBooking:     {PermBookingCreate, PermBookingUpdate},
	DeptGatekeeper:  {PermGuestCheckIn, PermGuestCheckOut},
	DeptSupport:     {PermSupportRead, PermSupportUpdate},
	DeptTechSupport: {PermSupportRead, PermSupportUpdate, PermSystemDiagnostics},
	DeptServiceBoy:  {PermHousekeepingRead, PermHousekeepingUpdate, PermOrderRead},
	DeptMaintenance: {PermMaintenanceRead, PermMaintenanceUpdate},
	DeptKitchen:     {PermInventoryRead, PermInventoryUpdate, PermOrderRead, PermOrderUpdate},
}
