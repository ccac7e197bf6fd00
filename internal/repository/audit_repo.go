package repository

import (
	"context"

	"gorm.io/gorm"

	"go-hotel-pms/internal/model"
)

type AuditRepository interface {
	Record(tx *gorm.DB, entry *model.HotelStatusAudit) error
	FindByHotel(ctx context.Context, hotelID string) ([]model.HotelStatusAudit, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Record(tx *gorm.DB, entry *model.HotelStatusAudit) error {
	return tx.Create(entry).Error
}

// FindByHotel returns the status history newest first.
func (r *auditRepo) FindByHotel(ctx context.Context, hotelID string) ([]model.HotelStatusAudit, error) {
	var entries []model.HotelStatusAudit
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
