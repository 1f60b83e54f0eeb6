package models

import (
	"time"

	"gorm.io/gorm"
)

// Track is a committee-scoped program. The committee is fixed at creation
// (copied from the creating head) and never changes.
type Track struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Committee   string         `gorm:"type:varchar(100);not null" json:"committee"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members    []TrackMember    `gorm:"foreignKey:TrackID" json:"members,omitempty"`
	Applicants []TrackApplicant `gorm:"foreignKey:TrackID" json:"applicants,omitempty"`
	Courses    []CourseTrack    `gorm:"foreignKey:TrackID" json:"courses,omitempty"`
}
