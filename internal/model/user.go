package model

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

type EmailType string

const (
	ResetPasswordEmailType EmailType = "reset_password"
	AccountLockEmailType   EmailType = "account_lock"
)

type User struct {
	gorm.Model
	DocumentID   string `gorm:"unique;not null"`
	Username     string `gorm:"unique;not null"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:user"`
	LastLoginAt  *time.Time
}

type CredentialsArgs struct {
	Username  string
	Password  string
	IPAddress string
	UserAgent string
}

type ForgotPasswordArgs struct {
	Email string
}

type ResetPasswordArgs struct {
	Token       string
	NewPassword string
}
