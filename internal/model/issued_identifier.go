package model

import "time"

// IdentifierKind is the entity an issued identifier was allocated for.
type IdentifierKind string

const (
	IdentifierHotel  IdentifierKind = "hotel"
	IdentifierVendor IdentifierKind = "vendor"
	IdentifierUser   IdentifierKind = "user"
)

// IssuedIdentifier is the append-only registry of every identifier handed out.
// Rows are never deleted, so a soft- or hard-deleted owner never frees its ID.
type IssuedIdentifier struct {
	ID       string         `gorm:"type:varchar(20);primaryKey" json:"id"`
	Kind     IdentifierKind `gorm:"type:varchar(10);not null;index" json:"kind"`
	Scope    string         `gorm:"type:varchar(64);index" json:"scope"` // allocation scope, e.g. "<hotel>:<role code>"
	IssuedBy string         `gorm:"type:varchar(20)" json:"issued_by"`
	IssuedAt time.Time      `gorm:"autoCreateTime" json:"issued_at"`
}
