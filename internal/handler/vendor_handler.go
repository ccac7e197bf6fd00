package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type VendorHandler struct {
	errorResponder
	vendorService service.VendorService
}

func NewVendorHandler(vendorService service.VendorService, logger *zap.Logger) *VendorHandler {
	return &VendorHandler{errorResponder: errorResponder{logger: logger}, vendorService: vendorService}
}

// CreateVendor registers a vendor and allocates its identifier
// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	vendor, err := h.vendorService.Create(c.UserContext(), actor, &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Vendor created successfully",
		"data":    vendor,
	})
}

// GET /api/v1/vendors
func (h *VendorHandler) GetVendors(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	vendors, err := h.vendorService.List(c.UserContext(), actor)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(vendors)
}

// GET /api/v1/vendors/:vendorId
func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	vendor, err := h.vendorService.Get(c.UserContext(), actor, c.Params("vendorId"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(vendor)
}

// PUT /api/v1/vendors/:vendorId
func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	vendor, err := h.vendorService.Update(c.UserContext(), actor, c.Params("vendorId"), &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Vendor updated successfully",
		"data":    vendor,
	})
}
