package model

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken has at most one live row per user; a new reset
// request replaces the previous row. Used is set on consumption.
type PasswordResetToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"unique;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"default:false"`
}
