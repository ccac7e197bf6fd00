package access

import (
	"strings"

	"go.uber.org/zap"
)

// Evaluator resolves effective permissions from the catalog at check time.
// Stored permission snapshots on user rows are never consulted.
type Evaluator struct {
	catalog *Catalog
	logger  *zap.Logger
}

func NewEvaluator(catalog *Catalog, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{catalog: catalog, logger: logger}
}

// Catalog returns the catalog the evaluator reads from.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// EffectivePermissions returns the permissions a role holds for a user in the
// given department (may be empty).
//
// An unknown role, or a STAFF-tier user whose department is not recognised,
// gets the STAFF baseline rather than nothing. This leniency is intentional and
// logged so it can be reviewed.
func (e *Evaluator) EffectivePermissions(role, department string) PermissionSet {
	r, ok := e.catalog.Role(role)
	if !ok {
		e.logger.Warn("unknown role, falling back to staff baseline",
			zap.String("role", role),
			zap.String("department", department),
		)
		return e.catalog.StaffBaseline()
	}
	if r.Tier == TierStaff && strings.TrimSpace(department) != "" {
		if _, known := ParseDepartment(department); !known {
			e.logger.Warn("unknown department, falling back to staff baseline",
				zap.String("role", role),
				zap.String("department", department),
			)
			return e.catalog.StaffBaseline()
		}
	}
	return e.catalog.PermissionsFor(role, department)
}

// HasPermission reports whether the role (and department) holds p.
func (e *Evaluator) HasPermission(role, department string, p Permission) bool {
	return e.EffectivePermissions(role, department).Has(p)
}

// Check is HasPermission with the rejection reason attached.
func (e *Evaluator) Check(role, department string, p Permission) error {
	if e.HasPermission(role, department, p) {
		return nil
	}
	return &DeniedError{Required: string(p), Current: role, Reason: "missing permission"}
}
