package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusCompleted ApplicationStatus = "completed"
)

// Application is an organization's or student's submission to a project. At
// most one of OrganizationID/StudentID is set; OrganizationName is a free-text
// fallback for legacy rows without an account reference.
type Application struct {
	gorm.Model

	ProjectID        uint  `gorm:"not null;index"`
	OrganizationID   *uint `gorm:"index"`
	StudentID        *uint `gorm:"index"`
	OrganizationName string
	Appeal           string            `gorm:"type:text;not null"`
	ContactInfo      string            `gorm:"not null"`
	Status           ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	// AcceptedAt is stamped on the transition into accepted and never cleared.
	AcceptedAt *time.Time

	// Relationships
	Project      Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Organization *User    `gorm:"foreignKey:OrganizationID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Student      *User    `gorm:"foreignKey:StudentID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Ratings      []Rating `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
