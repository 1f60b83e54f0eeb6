package models

import "time"

// Announcement expires lazily: expired rows are swept on the next list call,
// not by a background timer. Deleting an announcement never retracts the
// inbox messages its broadcast produced.
type Announcement struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatorID uint64    `gorm:"not null" json:"creator_id"`
	TrackID   *uint64   `gorm:"index" json:"track_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Creator Member `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Track   *Track `gorm:"foreignKey:TrackID" json:"track,omitempty"`
}
