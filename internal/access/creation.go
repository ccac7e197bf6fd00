package access

// CreationPolicy decides which role may create or assign which other role.
// Authority only flows downward; GOD Admin and Super Admin are the exceptions
// who may mint peers.
type CreationPolicy struct {
	catalog *Catalog
}

func NewCreationPolicy(catalog *Catalog) *CreationPolicy {
	return &CreationPolicy{catalog: catalog}
}

// CanCreateRole reports whether actor may create a user holding target.
//
// Rules, first match wins:
//  1. GOD Admin may create anything.
//  2. Super Admin may create anything except GOD Admin.
//  3. Hotel Admin may not create Hotel Admin or above.
//  4. Manager and below may not create Manager or above.
//  5. Otherwise allowed.
func (p *CreationPolicy) CanCreateRole(actor, target string) bool {
	actorRole, actorKnown := p.catalog.Role(actor)
	targetLevel, targetKnown := p.catalog.LevelOf(target)

	if actorKnown && actorRole.Name == RoleGodAdmin {
		return true
	}
	if actorKnown && actorRole.Name == RoleSuperAdmin {
		targetRole, _ := p.catalog.Role(target)
		return targetRole.Name != RoleGodAdmin
	}
	if actorKnown && actorRole.Tier == TierAdmin {
		return !(targetKnown && targetLevel <= TierAdmin)
	}
	if actorKnown && actorRole.Tier >= TierManager {
		return !(targetKnown && targetLevel <= TierManager)
	}
	return true
}

// CheckCreateRole is CanCreateRole with the tier pair for the 403 payload.
func (p *CreationPolicy) CheckCreateRole(actor, target string) error {
	if p.CanCreateRole(actor, target) {
		return nil
	}
	current := actor
	if level, ok := p.catalog.LevelOf(actor); ok {
		current = level.String()
	}
	return &DeniedError{
		Required: p.requiredCreator(target).String(),
		Current:  current,
		Reason:   "cannot create role " + target,
	}
}

// CreatableRoles lists the roles actor may create, highest authority first.
func (p *CreationPolicy) CreatableRoles(actor string) []Role {
	var out []Role
	for _, r := range p.catalog.Roles() {
		if p.CanCreateRole(actor, r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// requiredCreator is the lowest-authority tier that may create target.
func (p *CreationPolicy) requiredCreator(target string) Tier {
	level, ok := p.catalog.LevelOf(target)
	if !ok {
		return TierStaff
	}
	switch level {
	case TierGodAdmin:
		return TierGodAdmin
	case TierSuperAdmin:
		return TierSuperAdmin
	default:
		return level - 1
	}
}
