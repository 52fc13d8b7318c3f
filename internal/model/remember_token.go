package model

import (
	"time"

	"gorm.io/gorm"
)

// RememberToken has at most one live row per user; a new "remember me"
// login replaces the previous row.
type RememberToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
