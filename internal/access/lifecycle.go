package access

import "strings"

// HotelStatus is a hotel's lifecycle state.
type HotelStatus string

const (
	StatusActive   HotelStatus = "active"
	StatusInactive HotelStatus = "inactive"
	StatusDelisted HotelStatus = "delisted"
	StatusDeleted  HotelStatus = "deleted"
)

// ParseHotelStatus resolves a status name; "deactivated" is an alias of inactive.
func ParseHotelStatus(s string) (HotelStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, true
	case "inactive", "deactivated":
		return StatusInactive, true
	case "delisted":
		return StatusDelisted, true
	case "deleted":
		return StatusDeleted, true
	}
	return "", false
}

// Decision is the outcome of a lifecycle check. Required is the least
// authoritative tier that would have been allowed.
type Decision struct {
	Allowed  bool
	Required Tier
	Current  Tier
	Reason   string
}

// Err converts a rejection into a *DeniedError; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Required: d.Required.String(), Current: d.Current.String(), Reason: d.Reason}
}

// LifecycleGuard gates hotel status transitions by actor tier. It must run
// before any permission-token check: whether a transition is allowed depends on
// the hotel's current state, which a token alone cannot express.
//
//	active <-> inactive           ADMIN or higher
//	active|inactive -> delisted   SUPER_ADMIN or higher
//	delisted -> other             SUPER_ADMIN or higher
//	any -> deleted, deleted -> *  GOD_ADMIN only
//	x -> x                        always (no-op)
type LifecycleGuard struct{}

func NewLifecycleGuard() *LifecycleGuard {
	return &LifecycleGuard{}
}

// CanTransition decides whether an actor of the given tier may move a hotel
// from current to target.
func (g *LifecycleGuard) CanTransition(actor Tier, current, target HotelStatus) Decision {
	if !actor.Valid() {
		return Decision{Required: TierStaff, Current: actor, Reason: "unknown actor tier"}
	}
	if !validStatus(current) || !validStatus(target) {
		return Decision{Required: TierGodAdmin, Current: actor, Reason: "unknown hotel status"}
	}
	if current == target {
		return Decision{Allowed: true, Required: TierStaff, Current: actor, Reason: "no-op"}
	}

	switch {
	case target == StatusDeleted:
		return gate(actor, TierGodAdmin, "only GOD Admin may delete a hotel")
	case current == StatusDeleted:
		return gate(actor, TierGodAdmin, "only GOD Admin may restore a deleted hotel")
	case current == StatusDelisted:
		return gate(actor, TierSuperAdmin, "only Super Admin or above may undo a delist")
	case target == StatusDelisted:
		return gate(actor, TierSuperAdmin, "only Super Admin or above may delist a hotel")
	default:
		return gate(actor, TierAdmin, "only Hotel Admin or above may activate or deactivate a hotel")
	}
}

// CanHardDelete gates physical removal of a hotel row.
func (g *LifecycleGuard) CanHardDelete(actor Tier) Decision {
	if !actor.Valid() {
		return Decision{Required: TierGodAdmin, Current: actor, Reason: "unknown actor tier"}
	}
	return gate(actor, TierGodAdmin, "only GOD Admin may hard-delete a hotel")
}

// TransitionPermission is the token an actor must additionally hold once the
// guard has allowed a transition.
func TransitionPermission(current, target HotelStatus) Permission {
	switch {
	case target == StatusDeleted:
		return PermHotelDelete
	case target == StatusDelisted:
		return PermHotelDelist
	case target == StatusInactive:
		return PermHotelDeactivate
	case current == StatusDelisted:
		return PermHotelDelist
	default:
		return PermHotelUpdate
	}
}

func gate(actor, required Tier, reason string) Decision {
	if actor <= required {
		return Decision{Allowed: true, Required: required, Current: actor}
	}
	return Decision{Required: required, Current: actor, Reason: reason}
}

func validStatus(s HotelStatus) bool {
	switch s {
	case StatusActive, StatusInactive, StatusDelisted, StatusDeleted:
		return true
	}
	return false
}
