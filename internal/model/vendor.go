package model

// Vendor owns zero or more hotels. Vendor IDs share the hotel ID width but
// start with entity digit 2.
type Vendor struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Phone    string `gorm:"type:varchar(30)" json:"phone"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	Hotels []Hotel `gorm:"foreignKey:VendorID" json:"hotels,omitempty"`
}
