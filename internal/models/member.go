package models

import (
	"time"

	"gorm.io/gorm"
)

type MemberRole string

const (
	RoleNotAccepted MemberRole = "not-accepted"
	RoleMember      MemberRole = "member"
	RoleHead        MemberRole = "head"
	RoleVice        MemberRole = "Vice"
)

type Member struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Committee    string         `gorm:"type:varchar(100);not null" json:"committee"`
	Role         MemberRole     `gorm:"type:varchar(20);not null;default:'not-accepted'" json:"role"`
	Gender       string         `gorm:"type:varchar(20)" json:"gender"`
	PhoneNumber  string         `gorm:"type:varchar(30)" json:"phone_number"`
	Rate         *float64       `json:"rate"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Inbox []Message    `gorm:"foreignKey:MemberID" json:"inbox,omitempty"`
	Tasks []MemberTask `gorm:"foreignKey:MemberID" json:"tasks,omitempty"`
}
