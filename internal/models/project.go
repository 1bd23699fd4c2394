package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusReview   ProjectStatus = "review"
	ProjectStatusPublic   ProjectStatus = "public"
	ProjectStatusRejected ProjectStatus = "rejected"
	ProjectStatusClosed   ProjectStatus = "closed"
)

// Project is a collaboration opportunity posted by a company. CompanyID is the
// owning company's user id and is never changed after creation.
type Project struct {
	gorm.Model

	CompanyID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text;not null"`
	// ContactInfo is private to the owner and admins; public listings redact it.
	ContactInfo string        `gorm:"not null"`
	Budget      string
	Deadline    *time.Time
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'review'"`

	// Relationships
	Company      User          `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Applications []Application `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
