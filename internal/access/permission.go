package access

import "sort"

// Permission is an opaque "<resource>.<action>" token.
type Permission string

const (
	// Hotel management
	PermHotelRead       Permission = "hotel.read"
	PermHotelCreate     Permission = "hotel.create"
	PermHotelUpdate     Permission = "hotel.update"
	PermHotelDeactivate Permission = "hotel.deactivate"
	PermHotelDelist     Permission = "hotel.delist"
	PermHotelDelete     Permission = "hotel.delete"
	PermHotelHardDelete Permission = "hotel.hard_delete"

	// Vendor management
	PermVendorRead   Permission = "vendor.read"
	PermVendorCreate Permission = "vendor.create"
	PermVendorUpdate Permission = "vendor.update"
	PermVendorDelete Permission = "vendor.delete"

	// Hotel users (staff/admin)
	PermUserRead   Permission = "user.read"
	PermUserCreate Permission = "user.create"
	PermUserUpdate Permission = "user.update"
	PermUserDelete Permission = "user.delete"
	PermRoleAssign Permission = "role.assign"

	// Bookings
	PermBookingRead   Permission = "booking.read"
	PermBookingCreate Permission = "booking.create"
	PermBookingUpdate Permission = "booking.update"
	PermBookingDelete Permission = "booking.delete"

	// Rooms
	PermRoomRead   Permission = "room.read"
	PermRoomCreate Permission = "room.create"
	PermRoomUpdate Permission = "room.update"
	PermRoomDelete Permission = "room.delete"

	// Guests at the gate / front desk
	PermGuestCheckIn  Permission = "guest.checkin"
	PermGuestCheckOut Permission = "guest.checkout"

	// Reporting and payments
	PermReportsRead      Permission = "reports.read"
	PermReportsFinancial Permission = "reports.financial"
	PermPaymentRead      Permission = "payment.read"
	PermPaymentProcess   Permission = "payment.process"

	// Operations
	PermSupportRead        Permission = "support.read"
	PermSupportUpdate      Permission = "support.update"
	PermMaintenanceRead    Permission = "maintenance.read"
	PermMaintenanceUpdate  Permission = "maintenance.update"
	PermHousekeepingRead   Permission = "housekeeping.read"
	PermHousekeepingUpdate Permission = "housekeeping.update"
	PermInventoryRead      Permission = "inventory.read"
	PermInventoryUpdate    Permission = "inventory.update"
	PermOrderRead          Permission = "order.read"
	PermOrderUpdate        Permission = "order.update"

	// Platform
	PermAuditRead         Permission = "audit.read"
	PermDashboardView     Permission = "dashboard.view"
	PermSystemSettings    Permission = "system.settings"
	PermSystemDiagnostics Permission = "system.diagnostics"
)

// allPermissions is the full token enumeration. GOD Admin's grant set is derived
// from it, so a token added here is granted to GOD Admin automatically.
var allPermissions = []Permission{
	PermHotelRead, PermHotelCreate, PermHotelUpdate, PermHotelDeactivate,
	PermHotelDelist, PermHotelDelete, PermHotelHardDelete,
	PermVendorRead, PermVendorCreate, PermVendorUpdate, PermVendorDelete,
	PermUserRead, PermUserCreate, PermUserUpdate, PermUserDelete, PermRoleAssign,
	PermBookingRead, PermBookingCreate, PermBookingUpdate, PermBookingDelete,
	PermRoomRead, PermRoomCreate, PermRoomUpdate, PermRoomDelete,
	PermGuestCheckIn, PermGuestCheckOut,
	PermReportsRead, PermReportsFinancial, PermPaymentRead, PermPaymentProcess,
	PermSupportRead, PermSupportUpdate, PermMaintenanceRead, PermMaintenanceUpdate,
	PermHousekeepingRead, PermHousekeepingUpdate, PermInventoryRead, PermInventoryUpdate,
	PermOrderRead, PermOrderUpdate,
	PermAuditRead, PermDashboardView, PermSystemSettings, PermSystemDiagnostics,
}

// AllPermissions returns every defined permission token.
func AllPermissions() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// PermissionSet is a set of permission tokens. Sets handed out by the catalog are
// copies; mutating one never affects the catalog.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given tokens.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether p is in the set.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Union returns a new set holding the tokens of both sets.
func (s PermissionSet) Union(other PermissionSet) PermissionSet {
	out := make(PermissionSet, len(s)+len(other))
	for p := range s {
		out[p] = struct{}{}
	}
	for p := range other {
		out[p] = struct{}{}
	}
	return out
}

// Contains reports whether every token of other is also in s.
func (s PermissionSet) Contains(other PermissionSet) bool {
	for p := range other {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s PermissionSet) Clone() PermissionSet {
	return s.Union(nil)
}

// Strings returns the tokens sorted, for JSON snapshots and responses.
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}
