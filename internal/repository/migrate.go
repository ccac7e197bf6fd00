package repository

import (
	"gorm.io/gorm"

	"go-hotel-pms/internal/model"
)

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
