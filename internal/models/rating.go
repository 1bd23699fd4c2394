package models

import "gorm.io/gorm"

// Rating is one side of the mutual post-completion review. The composite
// unique index keeps the one-rating-per-rater-per-application invariant at the
// storage layer, so concurrent submissions degrade to a constraint error
// instead of a duplicate row.
type Rating struct {
	gorm.Model

	ProjectID     uint     `gorm:"not null;index"`
	ApplicationID uint     `gorm:"not null;uniqueIndex:idx_rating_once"`
	RaterType     UserRole `gorm:"type:varchar(20);not null;uniqueIndex:idx_rating_once"`
	RaterID       uint     `gorm:"not null;uniqueIndex:idx_rating_once"`
	RateeType     UserRole `gorm:"type:varchar(20);not null"`
	RateeID       uint     `gorm:"not null;index"`

	Score int `gorm:"not null;check:score >= 1 AND score <= 5"`
	// Sub-scores are optional; zero means unset.
	Communication   int
	Quality         int
	Punctuality     int
	Professionalism int
	Comment         string `gorm:"type:text"`

	// Relationships
	Project     Project     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Application Application `gorm:"foreignKey:ApplicationID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
