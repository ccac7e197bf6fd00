package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/identifier"

	"github.com/gofiber/fiber/v2"
)

type IdentifierHandler struct {
	errorResponder
}

func NewIdentifierHandler(logger *zap.Logger) *IdentifierHandler {
	return &IdentifierHandler{errorResponder: errorResponder{logger: logger}}
}

// DecodedIdentifier is a parsed user identifier.
type DecodedIdentifier struct {
	ID          string `json:"id"`
	EntityType  int    `json:"entity_type"`
	HotelNumber string `json:"hotel_number"`
	HotelID     string `json:"hotel_id"`
	RoleCode    int    `json:"role_code"`
	RoleName    string `json:"role_name"`
	UserNumber  int    `json:"user_number"`
}

// Decode splits a user identifier into hotel, role and sequence
// GET /api/v1/identifiers/:id
func (h *IdentifierHandler) Decode(c *fiber.Ctx) error {
	id := c.Params("id")
	decoded, err := identifier.Parse(id)
	if err != nil {
		return h.respond(c, err)
	}

	return c.JSON(DecodedIdentifier{
		ID:          id,
		EntityType:  decoded.EntityType,
		HotelNumber: decoded.HotelNumber,
		HotelID:     decoded.HotelID(),
		RoleCode:    decoded.RoleCode,
		RoleName:    decoded.RoleName(),
		UserNumber:  decoded.UserNumber,
	})
}
