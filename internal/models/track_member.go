package models

import "time"

// TrackMemberRole distinguishes the three membership sets a track carries.
type TrackMemberRole string

const (
	TrackRoleMember     TrackMemberRole = "member"
	TrackRoleSupervisor TrackMemberRole = "supervisor"
	TrackRoleHR         TrackMemberRole = "hr"
)

// TrackMember links a member to a track in one of its membership sets.
// The composite key gives set semantics: adding twice is a no-op.
type TrackMember struct {
	TrackID  uint64          `gorm:"primarykey" json:"track_id"`
	MemberID uint64          `gorm:"primarykey" json:"member_id"`
	Role     TrackMemberRole `gorm:"primarykey;type:varchar(20)" json:"role"`
	JoinedAt time.Time       `json:"joined_at"`

	// Relations
	Track  Track  `gorm:"foreignKey:TrackID" json:"-"`
	Member Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}
