package models

import "time"

type ApplicantStatus string

const (
	ApplicantPending  ApplicantStatus = "pending"
	ApplicantAccepted ApplicantStatus = "accepted"
	ApplicantRejected ApplicantStatus = "rejected"
)

// TrackApplicant is one member's application to join a track. Entries are
// never deleted; a decision mutates the status in place. The composite key
// also closes the duplicate-application race at the store.
type TrackApplicant struct {
	TrackID   uint64          `gorm:"primarykey" json:"track_id"`
	MemberID  uint64          `gorm:"primarykey" json:"member_id"`
	Status    ApplicantStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	Track  Track  `gorm:"foreignKey:TrackID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
