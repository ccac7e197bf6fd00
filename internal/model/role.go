package model

import (
	"strings"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/identifier"
)

// RoleResponse is the API view of a catalog role. Roles are fixed at compile
// time and have no table.
type RoleResponse struct {
	Name        string   `json:"name"`
	Level       int      `json:"level"`
	Tier        string   `json:"tier"`
	Code        int      `json:"code,omitempty"` // identifier role code, 0 when the role has none
	Department  string   `json:"department,omitempty"`
	Permissions []string `json:"permissions"`
}

// NewRoleResponse builds the view of r with its permissions from catalog.
func NewRoleResponse(catalog *access.Catalog, r access.Role) RoleResponse {
	code, _ := identifier.RoleCode(r.Name)
	return RoleResponse{
		Name:        r.Name,
		Level:       int(r.Tier),
		Tier:        r.Tier.String(),
		Code:        code,
		Department:  string(r.Department),
		Permissions: catalog.PermissionsOf(r.Name).Strings(),
	}
}

// PermissionResponse describes one permission token.
type PermissionResponse struct {
	Code     string `json:"code"`     // e.g., "hotel.delist"
	Resource string `json:"resource"` // e.g., "hotel"
	Action   string `json:"action"`   // e.g., "delist"
}

func NewPermissionResponse(p access.Permission) PermissionResponse {
	resource, action, _ := strings.Cut(string(p), ".")
	return PermissionResponse{Code: string(p), Resource: resource, Action: action}
}
