package models

import "time"

// MemberTask is a task-progress record assigned directly to a member. The
// submission link defaults to the "*" sentinel until a real link is set; the
// leaderboard counts a record as completed only when the link is real.
type MemberTask struct {
	ID                 uint64     `gorm:"primarykey" json:"id"`
	MemberID           uint64     `gorm:"not null;index" json:"member_id"`
	Title              string     `gorm:"type:varchar(255);not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	StartDate          *time.Time `json:"start_date"`
	Deadline           *time.Time `json:"deadline"`
	SubmissionDate     *time.Time `json:"submission_date"`
	SubmissionLink     string     `gorm:"type:varchar(512);not null;default:'*'" json:"submission_link"`
	HeadEvaluation     float64    `gorm:"default:-1" json:"head_evaluation"`
	HeadPercent        int        `gorm:"default:60" json:"head_percent"`
	DeadlineEvaluation float64    `gorm:"default:0" json:"deadline_evaluation"`
	DeadlinePercent    int        `gorm:"default:40" json:"deadline_percent"`
	Rate               *float64   `json:"rate"`
	Points             *float64   `json:"points"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// Submitted reports whether the record carries a real submission link.
func (t MemberTask) Submitted() bool {
	return t.SubmissionLink != "" && t.SubmissionLink != "*"
}
