package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	errorResponder
	staffService service.StaffService
}

func NewStaffHandler(staffService service.StaffService, logger *zap.Logger) *StaffHandler {
	return &StaffHandler{errorResponder: errorResponder{logger: logger}, staffService: staffService}
}

// CreateUser handles hotel user creation
// POST /api/v1/hotels/:hotelId/users
func (h *StaffHandler) CreateUser(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	var req service.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.staffService.Create(c.UserContext(), actor, hotelID, &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user.ToResponse(),
	})
}

// GetUsers returns the hotel's users
// GET /api/v1/hotels/:hotelId/users
func (h *StaffHandler) GetUsers(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	users, err := h.staffService.List(c.UserContext(), actor, hotelID)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(users)
}

// GetUser returns a single user
// GET /api/v1/hotels/:hotelId/users/:userId
func (h *StaffHandler) GetUser(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	user, err := h.staffService.Get(c.UserContext(), actor, hotelID, c.Params("userId"))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles user update, including role changes
// PUT /api/v1/hotels/:hotelId/users/:userId
func (h *StaffHandler) UpdateUser(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	var req service.UpdateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.staffService.Update(c.UserContext(), actor, hotelID, c.Params("userId"), &req)
	if err != nil {
		return h.respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"data":    user.ToResponse(),
	})
}

// DeleteUser soft-deletes a user
// DELETE /api/v1/hotels/:hotelId/users/:userId
func (h *StaffHandler) DeleteUser(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	hotelID, err := hotelParam(c)
	if err != nil {
		return h.respond(c, err)
	}

	if err := h.staffService.Delete(c.UserContext(), actor, hotelID, c.Params("userId")); err != nil {
		return h.respond(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
