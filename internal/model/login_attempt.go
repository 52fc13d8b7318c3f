package model

import (
	"gorm.io/gorm"
)

type AttemptStatus string

const (
	AttemptSuccess AttemptStatus = "success"
	AttemptFailure AttemptStatus = "failure"
)

// LoginAttempt rows are append-only; the lockout window is filtered at
// query time, there is no cleanup job.
type LoginAttempt struct {
	gorm.Model
	DocumentID string        `gorm:"unique;not null"`
	Username   string        `gorm:"index;not null"`
	IPAddress  string        `gorm:"not null"`
	UserAgent  string        `gorm:"not null"`
	Device     string        `gorm:"not null"`
	Status     AttemptStatus `gorm:"not null;default:failure"`
}
