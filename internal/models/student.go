package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StudentProfile struct {
	gorm.Model

	UserID       uint   `gorm:"not null;uniqueIndex"`
	Name         string `gorm:"not null"`
	ContactEmail string `gorm:"not null"`
	University   string
	Department   string
	Grade        string
	Skills       pq.StringArray `gorm:"type:text[]"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
