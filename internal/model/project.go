package model

import (
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model
	DocumentID string `gorm:"unique;not null"`
	Name       string `gorm:"not null"`
	Active     bool   `gorm:"default:true"`
}
