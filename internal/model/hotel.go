package model

import (
	"time"

	"go-hotel-pms/internal/access"
)

// Hotel is a tenant. Status moves only through the lifecycle guard.
type Hotel struct {
	BaseModel
	Name     string             `gorm:"type:varchar(255);not null" json:"name"`
	Email    string             `gorm:"type:varchar(255);index" json:"email"`
	Phone    string             `gorm:"type:varchar(30)" json:"phone"`
	Address  string             `gorm:"type:text" json:"address"`
	City     string             `gorm:"type:varchar(100)" json:"city"`
	Country  string             `gorm:"type:varchar(100)" json:"country"`
	VendorID *string            `gorm:"type:varchar(10);index" json:"vendor_id,omitempty"` // nil for directly-registered hotels
	Vendor   *Vendor            `gorm:"foreignKey:VendorID;references:ID" json:"vendor,omitempty"`
	Status   access.HotelStatus `gorm:"type:varchar(20);not null;default:active;index" json:"status"`
}

// HotelResponse is the API view of a hotel.
type HotelResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Phone     string             `json:"phone"`
	Address   string             `json:"address"`
	City      string             `json:"city"`
	Country   string             `json:"country"`
	VendorID  *string            `json:"vendor_id,omitempty"`
	Status    access.HotelStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	CreatedBy string             `json:"created_by"`
	UpdatedBy string             `json:"updated_by"`
}

func (h *Hotel) ToResponse() HotelResponse {
	return HotelResponse{
		ID:        h.ID,
		Name:      h.Name,
		Email:     h.Email,
		Phone:     h.Phone,
		Address:   h.Address,
		City:      h.City,
		Country:   h.Country,
		VendorID:  h.VendorID,
		Status:    h.Status,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
		CreatedBy: h.CreatedBy,
		UpdatedBy: h.UpdatedBy,
	}
}

// HotelFilter narrows hotel listings.
type HotelFilter struct {
	HotelID  string // restricts to one tenant when set
	VendorID string
	Status   access.HotelStatus
	Search   string
}
