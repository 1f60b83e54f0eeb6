package models

import "time"

// Submission is one member's attempt at a task. Submissions are append-only;
// only the rating fields are overwritten after the fact. A member may submit
// the same task more than once.
type Submission struct {
	ID                 uint64    `gorm:"primarykey" json:"id"`
	TaskID             uint64    `gorm:"not null;index" json:"task_id"`
	MemberID           uint64    `gorm:"not null;index" json:"member_id"`
	Link               string    `gorm:"type:varchar(512);not null;default:'*'" json:"link"`
	SubmissionDate     time.Time `json:"submission_date"`
	HeadEvaluation     int       `gorm:"default:0" json:"head_evaluation"`
	DeadlineEvaluation int       `gorm:"default:0" json:"deadline_evaluation"`
	Rate               *float64  `json:"rate"`
	Notes              string    `gorm:"type:text" json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relations
	Task   Task   `gorm:"foreignKey:TaskID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// Rated reports whether the submission has been rated.
func (s Submission) Rated() bool {
	return s.Rate != nil
}
