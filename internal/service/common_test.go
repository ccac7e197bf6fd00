package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainValidationRules(t *testing.T) {
	assert.NoError(t, validate(&ChangeStatusRequest{Status: "delisted"}))
	assert.ErrorIs(t, validate(&ChangeStatusRequest{Status: "archived"}), ErrValidation)

	staff := &CreateStaffRequest{Email: "a@b.test", Password: "password123", FullName: "A", Role: "Manager"}
	assert.NoError(t, validate(staff))
	staff.Role = "Night Auditor"
	assert.ErrorIs(t, validate(staff), ErrValidation)

	type hotelRef struct {
		HotelID string `validate:"hotel_id"`
	}
	assert.NoError(t, validate(&hotelRef{HotelID: "10000001"}))
	assert.ErrorIs(t, validate(&hotelRef{HotelID: "12ab"}), ErrValidation)
}

func TestMustRegisterPanicsOnBadRule(t *testing.T) {
	assert.Panics(t, func() { mustRegister("", func(string) bool { return true }) })
}
