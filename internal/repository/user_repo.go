package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"go-hotel-pms/internal/model"
)

type UserRepository interface {
	Create(tx *gorm.DB, user *model.HotelUser) error
	FindByEmail(ctx context.Context, email string) (*model.HotelUser, error)
	FindByID(ctx context.Context, id string) (*model.HotelUser, error)
	FindByHotel(ctx context.Context, hotelID string) ([]model.HotelUser, error)
	UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error
	StartSession(ctx context.Context, userID, version string, at time.Time) error
	SoftDelete(ctx context.Context, id, deletedBy string) error
	SoftDeleteByHotel(tx *gorm.DB, hotelID, deletedBy string) (int64, error)
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	UpdateTokenVersion(ctx context.Context, userID, version string) error
	UpdateLastSeen(ctx context.Context, userID string) error
	CountByRole(ctx context.Context, hotelID string) (map[string]int64, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(tx *gorm.DB, user *model.HotelUser) error {
	return tx.Create(user).Error
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.HotelUser, error) {
	var user model.HotelUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (*model.HotelUser, error) {
	var user model.HotelUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByHotel(ctx context.Context, hotelID string) ([]model.HotelUser, error) {
	var users []model.HotelUser
	err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id ASC").Find(&users).Error
	return users, err
}

// UpdateProfile writes the given columns of an active, non-deleted user. It
// returns gorm.ErrRecordNotFound when the user was deleted in the meantime.
func (r *userRepo) UpdateProfile(ctx context.Context, userID string, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.HotelUser{}).
		Where("id = ? AND status = ?", userID, model.UserStatusActive).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StartSession rotates the token version and stamps last_seen_at, but only
// while the account is still active.
func (r *userRepo) StartSession(ctx context.Context, userID, version string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.HotelUser{}).
		Where("id = ? AND status = ? AND is_active = ?", userID, model.UserStatusActive, true).
		Updates(map[string]interface{}{
			"token_version": version,
			"last_seen_at":  at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips the status and sets deleted_at. The row, and therefore the
// identifier, stays.
func (r *userRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.HotelUser{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     model.UserStatusDeleted,
		"is_active":  false,
		"deleted_at": now,
		"deleted_by": deletedBy,
		"updated_at": now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteByHotel retires every remaining user of a hotel inside tx.
func (r *userRepo) SoftDeleteByHotel(tx *gorm.DB, hotelID, deletedBy string) (int64, error) {
	now := time.Now()
	res := tx.Model(&model.HotelUser{}).Where("hotel_id = ?", hotelID).Updates(map[string]interface{}{
		"status":     model.UserStatusDeleted,
		"is_active":  false,
		"deleted_at": now,
		"deleted_by": deletedBy,
		"updated_at": now,
	})
	return res.RowsAffected, res.Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&model.HotelUser{}).Where("id = ?", userID).Update("password", hashedPassword).Error
}

func (r *userRepo) UpdateTokenVersion(ctx context.Context, userID, version string) error {
	return r.db.WithContext(ctx).Model(&model.HotelUser{}).Where("id = ?", userID).Update("token_version", version).Error
}

func (r *userRepo) UpdateLastSeen(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Model(&model.HotelUser{}).Where("id = ?", userID).Update("last_seen_at", time.Now()).Error
}

// CountByRole groups active users by role, for one hotel when hotelID is set.
func (r *userRepo) CountByRole(ctx context.Context, hotelID string) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	query := r.db.WithContext(ctx).Model(&model.HotelUser{}).Select("role, COUNT(*) as count")
	if hotelID != "" {
		query = query.Where("hotel_id = ?", hotelID)
	}
	if err := query.Group("role").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

// EmailExists includes soft-deleted users, since the unique index does too.
func (r *userRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&model.HotelUser{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}
