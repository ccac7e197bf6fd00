package model

import (
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Account status of a hotel user. Deleting a user flips the status and soft
// deletes the row; the identifier stays issued.
const (
	UserStatusActive  = "active"
	UserStatusDeleted = "deleted"
)

// HotelUser is a staff or admin account scoped to one hotel. Users of the
// system hotel 0000000000 act across tenants.
type HotelUser struct {
	BaseModel
	HotelID    string `gorm:"type:varchar(10);not null;index:idx_hotel_users_hotel_role" json:"hotel_id"`
	Role       string `gorm:"type:varchar(50);not null;index:idx_hotel_users_hotel_role" json:"role"`
	Department string `gorm:"type:varchar(50)" json:"department,omitempty"`
	Email      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName   string `gorm:"type:varchar(255)" json:"full_name"`
	Phone      string `gorm:"type:varchar(30)" json:"phone"`

	// Permissions is the snapshot taken at create/update time. It is audit
	// metadata only; authorization always re-derives from the role catalog.
	Permissions datatypes.JSON `json:"permissions"`

	IsActive     bool       `gorm:"default:true" json:"is_active"`
	Status       string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`                // For user presence
}

// SetPassword hashes and sets the user's password
func (u *HotelUser) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *HotelUser) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// SetPermissionSnapshot stores the given permission tokens as JSON.
func (u *HotelUser) SetPermissionSnapshot(perms []string) error {
	if perms == nil {
		perms = []string{}
	}
	raw, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	u.Permissions = datatypes.JSON(raw)
	return nil
}

// PermissionSnapshot decodes the stored snapshot. A missing snapshot is empty.
func (u *HotelUser) PermissionSnapshot() []string {
	var perms []string
	if len(u.Permissions) == 0 {
		return perms
	}
	_ = json.Unmarshal(u.Permissions, &perms)
	return perms
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          string     `json:"id"`
	HotelID     string     `json:"hotel_id"`
	Role        string     `json:"role"`
	Department  string     `json:"department,omitempty"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Phone       string     `json:"phone"`
	IsActive    bool       `json:"is_active"`
	Status      string     `json:"status"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by"`
}

// ToResponse converts HotelUser to UserResponse
func (u *HotelUser) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		HotelID:     u.HotelID,
		Role:        u.Role,
		Department:  u.Department,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		IsActive:    u.IsActive,
		Status:      u.Status,
		LastSeenAt:  u.LastSeenAt,
		Permissions: u.PermissionSnapshot(),
		CreatedAt:   u.CreatedAt,
		CreatedBy:   u.CreatedBy,
	}
}
