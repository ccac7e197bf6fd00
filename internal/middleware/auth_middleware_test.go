package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/service"
)

func newApp(actor *service.Actor, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{func(c *fiber.Ctx) error {
		if actor != nil {
			c.Locals(actorKey, *actor)
		}
		return c.Next()
	}}
	handlers = append(handlers, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error { return c.SendStatus(204) })
	app.Get("/hotels/:hotelId", handlers...)
	return app
}

func status(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireHotelScope(t *testing.T) {
	admin := &service.Actor{UserID: "100000000130001", HotelID: "1000000001", Role: access.RoleHotelAdmin}
	super := &service.Actor{UserID: "000000000020001", HotelID: identifier.SystemHotelID, Role: access.RoleSuperAdmin}

	tests := []struct {
		name  string
		actor *service.Actor
		path  string
		want  int
	}{
		{"own hotel", admin, "/hotels/1000000001", 204},
		{"legacy form of own hotel", admin, "/hotels/10000001", 204},
		{"other hotel", admin, "/hotels/1000000002", 403},
		{"system actor", super, "/hotels/1000000002", 204},
		{"malformed id", admin, "/hotels/abc", 400},
		{"no actor", nil, "/hotels/1000000001", 401},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status(t, newApp(tt.actor, RequireHotelScope()), tt.path))
		})
	}
}

func TestRequirePermission(t *testing.T) {
	evaluator := access.NewEvaluator(access.NewCatalog(), nil)
	kitchen := &service.Actor{HotelID: "1000000001", Role: string(access.DeptKitchen), Department: string(access.DeptKitchen)}
	finance := &service.Actor{HotelID: "1000000001", Role: string(access.DeptFinance), Department: string(access.DeptFinance)}

	assert.Equal(t, 204, status(t, newApp(finance, RequirePermission(evaluator, access.PermPaymentProcess)), "/hotels/1000000001"))
	assert.Equal(t, 403, status(t, newApp(kitchen, RequirePermission(evaluator, access.PermPaymentProcess)), "/hotels/1000000001"))
	assert.Equal(t, 401, status(t, newApp(nil, RequirePermission(evaluator, access.PermHotelRead)), "/hotels/1000000001"))
}

func TestRequireTier(t *testing.T) {
	catalog := access.NewCatalog()
	guard := RequireTier(catalog, access.TierSuperAdmin)

	assert.Equal(t, 204, status(t, newApp(&service.Actor{Role: access.RoleGodAdmin}, guard), "/hotels/1"))
	assert.Equal(t, 204, status(t, newApp(&service.Actor{Role: access.RoleSuperAdmin}, guard), "/hotels/1"))
	assert.Equal(t, 403, status(t, newApp(&service.Actor{Role: access.RoleHotelAdmin}, guard), "/hotels/1"))
	assert.Equal(t, 403, status(t, newApp(&service.Actor{Role: "Night Auditor"}, guard), "/hotels/1"))
}
