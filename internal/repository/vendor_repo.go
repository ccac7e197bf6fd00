package repository

import (
	"context"

	"gorm.io/gorm"

	"go-hotel-pms/internal/model"
)

type VendorRepository interface {
	Create(tx *gorm.DB, vendor *model.Vendor) error
	FindByID(ctx context.Context, id string) (*model.Vendor, error)
	FindByEmail(ctx context.Context, email string) (*model.Vendor, error)
	FindAll(ctx context.Context) ([]model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) error
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(tx *gorm.DB, vendor *model.Vendor) error {
	return tx.Create(vendor).Error
}

func (r *vendorRepo) FindByID(ctx context.Context, id string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Preload("Hotels").First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) FindByEmail(ctx context.Context, email string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) FindAll(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).Order("id ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Omit("Hotels").Save(vendor).Error
}
