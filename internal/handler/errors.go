package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/service"
	"go-hotel-pms/pkg/jwt"
)

// errorResponder maps service errors onto status codes.
type errorResponder struct {
	logger *zap.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	var denied *access.DeniedError
	var formatErr *identifier.FormatError
	var configErr *identifier.ConfigurationError

	switch {
	case errors.As(err, &denied):
		return c.Status(403).JSON(fiber.Map{
			"error":    err.Error(),
			"required": denied.Required,
			"current":  denied.Current,
		})
	case errors.As(err, &configErr):
		r.logger.Error("identifier configuration error", zap.String("role", configErr.Role), zap.String("path", c.Path()), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	case errors.As(err, &formatErr),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrRoleHotelMismatch),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, service.ErrWrongPassword):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionReplaced),
		errors.Is(err, service.ErrSessionTimeout),
		errors.Is(err, jwt.ErrInvalidToken):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrHotelNotFound),
		errors.Is(err, service.ErrVendorNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrStatusConflict),
		errors.Is(err, service.ErrAllocationConflict),
		errors.Is(err, identifier.ErrSequenceExhausted):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	r.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
}

// hotelParam reads :hotelId in canonical form, widening legacy 8-digit IDs.
func hotelParam(c *fiber.Ctx) (string, error) {
	return identifier.NormalizeHotelID(c.Params("hotelId"))
}
