package models

import "time"

// Task is a unit of work within a course. The two percent fields are the
// weight split between the head evaluation and the deadline evaluation.
type Task struct {
	ID              uint64     `gorm:"primarykey" json:"id"`
	CourseID        uint64     `gorm:"not null;index" json:"course_id"`
	Title           string     `gorm:"type:varchar(255);not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	StartDate       *time.Time `json:"start_date"`
	DueDate         *time.Time `json:"due_date"`
	TaskURL         string     `gorm:"type:varchar(512)" json:"task_url"`
	HeadPercent     int        `gorm:"default:50" json:"head_percent"`
	DeadlinePercent int        `gorm:"default:20" json:"deadline_percent"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relations
	Course      Course       `gorm:"foreignKey:CourseID" json:"-"`
	Submissions []Submission `gorm:"foreignKey:TaskID" json:"submissions,omitempty"`
}
