package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel carries the composite string ID and standard audit trail columns.
// IDs are allocated by the identifier generator before insert, never by the database.
type BaseModel struct {
	ID        string         `gorm:"type:varchar(20);primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"` // Soft Delete support

	// Audit User Tracking
	CreatedBy string `json:"created_by"`
	UpdatedBy string `json:"updated_by"`
	DeletedBy string `json:"deleted_by"`
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Vendor{},
		&Hotel{},
		&HotelUser{},
		&HotelStatusAudit{},
		&IssuedIdentifier{},
	}
}
