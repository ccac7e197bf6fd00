package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-hotel-pms/internal/identifier"
	"go-hotel-pms/internal/model"
)

// IdentifierRepository backs identifier probing with the issued_identifiers
// registry. It implements identifier.Store.
type IdentifierRepository interface {
	identifier.Store
	Reserve(tx *gorm.DB, id string, kind model.IdentifierKind, scope, issuedBy string) error
	FindByID(ctx context.Context, id string) (*model.IssuedIdentifier, error)
	WithTx(tx *gorm.DB) IdentifierRepository
}

type identifierRepo struct {
	db *gorm.DB
}

func NewIdentifierRepo(db *gorm.DB) IdentifierRepository {
	return &identifierRepo{db}
}

func (r *identifierRepo) WithTx(tx *gorm.DB) IdentifierRepository {
	return &identifierRepo{tx}
}

// Exists checks the registry first, then the owning table including
// soft-deleted rows, so identifiers issued before the registry existed are
// never handed out again.
func (r *identifierRepo) Exists(ctx context.Context, id string) (bool, error) {
	db := r.db.WithContext(ctx)

	var n int64
	if err := db.Model(&model.IssuedIdentifier{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	var owner interface{} = &model.HotelUser{}
	if len(id) == identifier.HotelIDLength {
		owner = &model.Hotel{}
		if id[0] == '2' {
			owner = &model.Vendor{}
		}
	}
	if err := db.Unscoped().Model(owner).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountMatching counts every user row ever created for (hotel, role),
// soft-deleted ones included.
func (r *identifierRepo) CountMatching(ctx context.Context, hotelID, role string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.HotelUser{}).
		Where("hotel_id = ? AND role = ?", hotelID, role).
		Count(&n).Error
	return n, err
}

// Reserve inserts the registry row. A primary key conflict means another
// writer issued the same identifier first.
func (r *identifierRepo) Reserve(tx *gorm.DB, id string, kind model.IdentifierKind, scope, issuedBy string) error {
	return tx.Create(&model.IssuedIdentifier{
		ID:       id,
		Kind:     kind,
		Scope:    scope,
		IssuedBy: issuedBy,
		IssuedAt: time.Now(),
	}).Error
}

func (r *identifierRepo) FindByID(ctx context.Context, id string) (*model.IssuedIdentifier, error) {
	var issued model.IssuedIdentifier
	if err := r.db.WithContext(ctx).First(&issued, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &issued, nil
}
