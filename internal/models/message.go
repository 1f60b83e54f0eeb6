package models

import "time"

type MessageStatus string

const (
	MessageStatusUnread   MessageStatus = "unread"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusArchived MessageStatus = "archived"
)

// MessageLink is a named link embedded in an inbox message.
type MessageLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Message is a fan-out artifact delivered into a member's inbox. Messages are
// never retracted, even when their source announcement is deleted.
type Message struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	MemberID  uint64        `gorm:"not null;index" json:"member_id"`
	Title     string        `gorm:"type:varchar(255);not null" json:"title"`
	Body      string        `gorm:"type:text" json:"body"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Status    MessageStatus `gorm:"type:varchar(20);not null;default:'unread'" json:"status"`
	Links     []MessageLink `gorm:"serializer:json" json:"links"`
	CreatedAt time.Time     `json:"created_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}
