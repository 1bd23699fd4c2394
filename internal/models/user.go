package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCompany      UserRole = "company"
	RoleOrganization UserRole = "organization"
	RoleStudent      UserRole = "student"
)

// User is the single account row behind every actor kind. Admin rights live in
// the metadata blobs, not in Role (see workflow.IsAdmin).
type User struct {
	gorm.Model

	Name         string         `gorm:"not null"`
	Email        string         `gorm:"uniqueIndex;not null"`
	PasswordHash string         `gorm:"not null"`
	Role         UserRole       `gorm:"type:varchar(20);not null"`
	AppMetadata  datatypes.JSON `gorm:"type:jsonb"`
	UserMetadata datatypes.JSON `gorm:"type:jsonb"`

	// Relationships
	OwnedProjects []Project `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
