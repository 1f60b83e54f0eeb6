package models

import (
	"time"

	"gorm.io/gorm"
)

// Course is a teaching unit containing tasks, linked to one or more tracks
// through the course_tracks edge table.
type Course struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Committee   string         `gorm:"type:varchar(100);not null" json:"committee"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tracks []CourseTrack `gorm:"foreignKey:CourseID" json:"tracks,omitempty"`
	Admins []CourseAdmin `gorm:"foreignKey:CourseID" json:"admins,omitempty"`
	Tasks  []Task        `gorm:"foreignKey:CourseID" json:"tasks,omitempty"`
}

// CourseTrack is the single source of truth for the Track<->Course relation.
// Both "course.tracks" and "track.courses" views are derived from it, so the
// two sides cannot diverge.
type CourseTrack struct {
	CourseID  uint64    `gorm:"primarykey" json:"course_id"`
	TrackID   uint64    `gorm:"primarykey" json:"track_id"`
	CreatedAt time.Time `json:"created_at"`

	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Track  Track  `gorm:"foreignKey:TrackID" json:"track,omitempty"`
}

// CourseAdmin links an administrating member to a course.
type CourseAdmin struct {
	CourseID  uint64    `gorm:"primarykey" json:"course_id"`
	MemberID  uint64    `gorm:"primarykey" json:"member_id"`
	CreatedAt time.Time `json:"created_at"`

	Course Course `gorm:"foreignKey:CourseID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
