package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type HotelHandler struct {
	errorResponder
	hotelService service.HotelService
}

func NewHotelHandler(hotelService service.HotelService, logger *zap.Logger) *HotelHandler {
	return &HotelHandler{errorResponder: errorResponder{logger: logger}, hotelService: hotelService}
}

// CreateHotel registers a hotel and allocates its identifier
// POST /api/v1/hotels
func (h *HotelHandler) CreateHotel(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req service.CreateHotelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	hotel, err := h.hotelService.Create(c.UserContext(), actor, &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Hotel created successfully",
		"data":    hotel.ToResponse(),
	})
}

// GetHotels lists hotels visible to the caller
// GET /api/v1/hotels?status=active&vendor_id=2000000001&search=grand
func (h *HotelHandler) GetHotels(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}

	filter := model.HotelFilter{
		VendorID: c.Query("vendor_id"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := access.ParseHotelStatus(raw)
		if !ok {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status filter"})
		}
		filter.Status = status
	}

	hotels, err := h.hotelService.List(c.UserContext(), actor, filter)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(hotels)
}

// GetHotel returns a single hotel
// GET /api/v1/hotels/:hotelId
func (h *HotelHandler) GetHotel(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	hotel, err := h.hotelService.Get(c.UserContext(), actor, hotelID)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(hotel)
}

// UpdateHotel edits hotel details; status has its own endpoint
// PUT /api/v1/hotels/:hotelId
func (h *HotelHandler) UpdateHotel(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	var req service.UpdateHotelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	hotel, err := h.hotelService.Update(c.UserContext(), actor, hotelID, &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Hotel updated successfully",
		"data":    hotel.ToResponse(),
	})
}

// ChangeStatus moves a hotel through its lifecycle
// PATCH /api/v1/hotels/:hotelId/status
func (h *HotelHandler) ChangeStatus(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	var req service.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	result, err := h.hotelService.ChangeStatus(c.UserContext(), actor, hotelID, &req)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(result)
}

// DeleteHotel physically removes a hotel
// DELETE /api/v1/hotels/:hotelId
func (h *HotelHandler) DeleteHotel(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	if err := h.hotelService.HardDelete(c.UserContext(), actor, hotelID); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Hotel deleted successfully"})
}

// GetStatusHistory returns the hotel's status audit trail, newest first
// GET /api/v1/hotels/:hotelId/status-history
func (h *HotelHandler) GetStatusHistory(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	history, err := h.hotelService.History(c.UserContext(), actor, hotelID)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(history)
}
