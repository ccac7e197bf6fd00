package handler

import (
	"go.uber.org/zap"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/middleware"
	"go-hotel-pms/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth      service.AuthService
	Hotels    service.HotelService
	Staff     service.StaffService
	Vendors   service.VendorService
	Dashboard service.DashboardService
	Evaluator *access.Evaluator
}

// SetupRoutes mounts the /api/v1 routes on app.
func SetupRoutes(app *fiber.App, svc Services, logger *zap.Logger) {
	catalog := svc.Evaluator.Catalog()
	perm := func(p access.Permission) fiber.Handler {
		return middleware.RequirePermission(svc.Evaluator, p)
	}

	authHandler := NewAuthHandler(svc.Auth, logger)
	roleHandler := NewRoleHandler(catalog, svc.Staff)
	hotelHandler := NewHotelHandler(svc.Hotels, logger)
	staffHandler := NewStaffHandler(svc.Staff, logger)
	vendorHandler := NewVendorHandler(svc.Vendors, logger)
	dashHandler := NewDashboardHandler(svc.Dashboard, logger)
	idHandler := NewIdentifierHandler(logger)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(svc.Auth), authHandler.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(svc.Auth))

	protected.Get("/dashboard/stats", perm(access.PermDashboardView), dashHandler.GetDashboardStats)

	// Role catalog
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/roles/creatable", roleHandler.GetCreatableRoles)
	protected.Get("/permissions", roleHandler.GetPermissions)
	protected.Get("/me/permissions", roleHandler.GetMyPermissions)

	protected.Get("/identifiers/:id", idHandler.Decode)

	// Hotels; status changes are gated by the lifecycle guard inside the service
	protected.Post("/hotels", perm(access.PermHotelCreate), hotelHandler.CreateHotel)
	protected.Get("/hotels", perm(access.PermHotelRead), hotelHandler.GetHotels)

	hotel := protected.Group("/hotels/:hotelId", middleware.RequireHotelScope())
	hotel.Get("/", perm(access.PermHotelRead), hotelHandler.GetHotel)
	hotel.Put("/", perm(access.PermHotelUpdate), hotelHandler.UpdateHotel)
	hotel.Delete("/", middleware.RequireTier(catalog, access.TierGodAdmin), hotelHandler.DeleteHotel)
	hotel.Patch("/status", hotelHandler.ChangeStatus)
	hotel.Get("/status-history", perm(access.PermAuditRead), hotelHandler.GetStatusHistory)

	// Hotel users
	hotel.Post("/users", perm(access.PermUserCreate), staffHandler.CreateUser)
	hotel.Get("/users", perm(access.PermUserRead), staffHandler.GetUsers)
	hotel.Get("/users/:userId", perm(access.PermUserRead), staffHandler.GetUser)
	hotel.Put("/users/:userId", perm(access.PermUserUpdate), staffHandler.UpdateUser)
	hotel.Delete("/users/:userId", perm(access.PermUserDelete), staffHandler.DeleteUser)

	// Vendors are managed by system admins only
	vendors := protected.Group("/vendors", middleware.RequireTier(catalog, access.TierSuperAdmin))
	vendors.Post("/", perm(access.PermVendorCreate), vendorHandler.CreateVendor)
	vendors.Get("/", perm(access.PermVendorRead), vendorHandler.GetVendors)
	vendors.Get("/:vendorId", perm(access.PermVendorRead), vendorHandler.GetVendor)
	vendors.Put("/:vendorId", perm(access.PermVendorUpdate), vendorHandler.UpdateVendor)
}
