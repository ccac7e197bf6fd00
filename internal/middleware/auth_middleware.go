package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/service"
)

const actorKey = "actor"

// RequireAuth validates the bearer token and stores the verified Actor in
// locals. The actor's role and hotel come from the user row, not the token.
func RequireAuth(auth service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		res, err := auth.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		// Set user info in context for downstream handlers
		c.Locals(actorKey, res.Actor)
		c.Locals("user_id", res.Actor.UserID)
		c.Locals("hotel_id", res.Actor.HotelID)

		return c.Next()
	}
}

// ActorFrom returns the actor stored by RequireAuth.
func ActorFrom(c *fiber.Ctx) (service.Actor, bool) {
	actor, ok := c.Locals(actorKey).(service.Actor)
	return actor, ok
}

// RequirePermission re-derives the actor's permissions from the catalog on every
// request; the snapshot stored on the user row is never read.
func RequirePermission(evaluator *access.Evaluator, perm access.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if !evaluator.HasPermission(actor.Role, actor.Department, perm) {
			return c.Status(403).JSON(fiber.Map{
				"error":    "Forbidden: requires '" + string(perm) + "' permission",
				"required": string(perm),
				"current":  actor.Role,
			})
		}
		return c.Next()
	}
}

// RequireTier admits actors whose role sits at max or above in the hierarchy.
func RequireTier(catalog *access.Catalog, max access.Tier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		level, known := catalog.LevelOf(actor.Role)
		if !known || level > max {
			return c.Status(403).JSON(fiber.Map{
				"error":    "Forbidden: insufficient role level",
				"required": max.String(),
				"current":  level.String(),
			})
		}
		return c.Next()
	}
}

// RequireHotelScope rejects requests whose :hotelId differs from the actor's
// hotel, unless the actor belongs to the system hotel.
func RequireHotelScope() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		hotelID, err := identifier.NormalizeHotelID(c.Params("hotelId"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if actor.IsSystem() || actor.HotelID == hotelID {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{
			"error":    "Forbidden: resource belongs to another hotel",
			"required": "hotel " + hotelID,
			"current":  "hotel " + actor.HotelID,
		})
	}
}
