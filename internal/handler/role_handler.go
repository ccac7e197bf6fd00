package handler

import (
	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/model"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RoleHandler struct {
	catalog      *access.Catalog
	staffService service.StaffService
}

func NewRoleHandler(catalog *access.Catalog, staffService service.StaffService) *RoleHandler {
	return &RoleHandler{catalog: catalog, staffService: staffService}
}

// GetRoles returns every role in the catalog with its tier and permissions
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles := h.catalog.Roles()
	responses := make([]model.RoleResponse, len(roles))
	for i, r := range roles {
		responses[i] = model.NewRoleResponse(h.catalog, r)
	}
	return c.JSON(responses)
}

// GetCreatableRoles lists the roles the caller may assign
// GET /api/v1/roles/creatable
func (h *RoleHandler) GetCreatableRoles(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(h.staffService.CreatableRoles(actor))
}

// GetPermissions lists all available permission tokens
// GET /api/v1/permissions
func (h *RoleHandler) GetPermissions(c *fiber.Ctx) error {
	perms := access.AllPermissions()
	responses := make([]model.PermissionResponse, len(perms))
	for i, p := range perms {
		responses[i] = model.NewPermissionResponse(p)
	}
	return c.JSON(responses)
}

// GetMyPermissions returns the caller's effective permissions
// GET /api/v1/me/permissions
func (h *RoleHandler) GetMyPermissions(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(h.staffService.EffectivePermissions(actor))
}
