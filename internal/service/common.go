package service

import (
	"errors"
	"fmt"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/pkg/validator"
)

var (
	ErrValidation         = errors.New("Validation failed")
	ErrHotelNotFound      = errors.New("hotel not found")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrAllocationConflict = errors.New("identifier allocation kept colliding, try again")
)

func init() {
	// role_name: roles that can be embedded in a user identifier
	mustRegister("role_name", identifier.HasRoleCode)
	mustRegister("hotel_id", func(s string) bool {
		_, err := identifier.NormalizeHotelID(s)
		return err == nil
	})
	mustRegister("hotel_status", func(s string) bool {
		_, ok := access.ParseHotelStatus(s)
		return ok
	})
}

func mustRegister(tag string, fn func(string) bool) {
	if err := validator.RegisterStringRule(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// validate runs struct validation and reports the first failure.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: Field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

// Actor is the verified caller of a service operation.
type Actor struct {
	UserID     string `json:"user_id"`
	HotelID    string `json:"hotel_id"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email"`
}

// IsSystem reports whether the actor belongs to the cross-tenant system hotel.
func (a Actor) IsSystem() bool {
	return identifier.IsSystemHotel(a.HotelID)
}

// authorizer bundles the access checks services run before touching data.
type authorizer struct {
	evaluator *access.Evaluator
}

func (z authorizer) catalog() *access.Catalog {
	return z.evaluator.Catalog()
}

func (z authorizer) require(actor Actor, p access.Permission) error {
	return z.evaluator.Check(actor.Role, actor.Department, p)
}

func (z authorizer) tier(actor Actor) access.Tier {
	level, _ := z.catalog().LevelOf(actor.Role)
	return level
}

// scope rejects access to another tenant's data unless the actor is a system user.
func (z authorizer) scope(actor Actor, hotelID string) error {
	if actor.IsSystem() || actor.HotelID == hotelID {
		return nil
	}
	return &access.DeniedError{
		Required: "hotel " + hotelID,
		Current:  "hotel " + actor.HotelID,
		Reason:   "resource belongs to another hotel",
	}
}
