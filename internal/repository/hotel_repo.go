package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-hotel-pms/internal/access"
	"go-hotel-pms/internal/model"
)

// ErrStatusChanged means the hotel's status moved, or the hotel vanished,
// between read and update.
var ErrStatusChanged = errors.New("hotel status changed concurrently")

type HotelRepository interface {
	Create(tx *gorm.DB, hotel *model.Hotel) error
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindAll(ctx context.Context, filter model.HotelFilter) ([]model.Hotel, error)
	UpdateDetails(ctx context.Context, hotel *model.Hotel) error
	UpdateStatus(tx *gorm.DB, id string, from, to access.HotelStatus, updatedBy string) error
	HardDelete(tx *gorm.DB, id string) error
	CountByStatus(ctx context.Context, hotelID string) (map[access.HotelStatus]int64, error)
}

type hotelRepo struct {
	db *gorm.DB
}

func NewHotelRepo(db *gorm.DB) HotelRepository {
	return &hotelRepo{db}
}

// Create receives the allocation transaction so the hotel row commits together
// with its identifier reservation.
func (r *hotelRepo) Create(tx *gorm.DB, hotel *model.Hotel) error {
	return tx.Create(hotel).Error
}

func (r *hotelRepo) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	var hotel model.Hotel
	if err := r.db.WithContext(ctx).First(&hotel, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepo) FindAll(ctx context.Context, filter model.HotelFilter) ([]model.Hotel, error) {
	var hotels []model.Hotel
	query := r.db.WithContext(ctx).Model(&model.Hotel{})
	if filter.HotelID != "" {
		query = query.Where("id = ?", filter.HotelID)
	}
	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR city LIKE ?", like, like)
	}
	err := query.Order("id ASC").Find(&hotels).Error
	return hotels, err
}

// UpdateDetails writes the editable profile columns only. Status moves through
// UpdateStatus alone, so a concurrent status change is never overwritten.
func (r *hotelRepo) UpdateDetails(ctx context.Context, hotel *model.Hotel) error {
	res := r.db.WithContext(ctx).Model(&model.Hotel{}).Where("id = ?", hotel.ID).
		Select("name", "email", "phone", "address", "city", "country", "updated_by", "updated_at").
		Updates(map[string]interface{}{
			"name":       hotel.Name,
			"email":      hotel.Email,
			"phone":      hotel.Phone,
			"address":    hotel.Address,
			"city":       hotel.City,
			"country":    hotel.Country,
			"updated_by": hotel.UpdatedBy,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus moves the hotel from one status to another inside the caller's
// transaction. It fails with ErrStatusChanged when the stored status is no
// longer from, so a decision taken on a stale read never commits.
func (r *hotelRepo) UpdateStatus(tx *gorm.DB, id string, from, to access.HotelStatus, updatedBy string) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_by": updatedBy,
		"updated_at": time.Now(),
	}
	res := tx.Model(&model.Hotel{}).Where("id = ? AND status = ?", id, from).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// HardDelete removes the hotel row. Its identifier stays in the registry.
func (r *hotelRepo) HardDelete(tx *gorm.DB, id string) error {
	res := tx.Unscoped().Delete(&model.Hotel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus groups hotels by status, for one hotel when hotelID is set.
func (r *hotelRepo) CountByStatus(ctx context.Context, hotelID string) (map[access.HotelStatus]int64, error) {
	var rows []struct {
		Status access.HotelStatus
		Count  int64
	}
	query := r.db.WithContext(ctx).Model(&model.Hotel{}).Select("status, COUNT(*) as count")
	if hotelID != "" {
		query = query.Where("id = ?", hotelID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[access.HotelStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
