package models

import "gorm.io/gorm"

type OrganizationProfile struct {
	gorm.Model

	UserID       uint   `gorm:"not null;uniqueIndex"`
	Name         string `gorm:"not null"`
	ContactEmail string `gorm:"not null"`
	ContactPhone string

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
