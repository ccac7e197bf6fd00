package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
)

// HotelStatusAudit records one persisted status transition.
type HotelStatusAudit struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	HotelID        string             `gorm:"type:varchar(10);not null;index" json:"hotel_id"`
	PreviousStatus access.HotelStatus `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      access.HotelStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedBy      string             `gorm:"type:varchar(20);not null" json:"changed_by"`
	ActorRole      string             `gorm:"type:varchar(50)" json:"actor_role"`
	Reason         string             `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt      time.Time          `gorm:"index" json:"created_at"`
}

func (HotelStatusAudit) TableName() string {
	return "hotel_status_audits"
}

func (a *HotelStatusAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
