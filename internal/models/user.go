package models

import (
	"time"
)

// User owns brand projects. TokenHash is the sha256 hex digest of the
// bearer token handed out at creation.
type User struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name      string `gorm:"size:120"`
	TokenHash string `gorm:"size:64;uniqueIndex"`
}
