package dto

import (
	"time"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// AnnouncementDTO represents an announcement in API responses
type AnnouncementDTO struct {
	ID        uint64           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content"`
	ExpiresAt time.Time        `json:"expires_at"`
	Creator   *MemberDTO       `json:"creator,omitempty"`
	Track     *TrackSummaryDTO `json:"track,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ToAnnouncementDTO converts an announcement to its response shape
func ToAnnouncementDTO(a models.Announcement) AnnouncementDTO {
	dto := AnnouncementDTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		ExpiresAt: a.ExpiresAt,
		CreatedAt: a.CreatedAt,
	}
	if a.Creator.ID != 0 {
		creator := ToMemberDTO(a.Creator)
		dto.Creator = &creator
	}
	if a.Track != nil {
		track := ToTrackSummaryDTO(*a.Track)
		dto.Track = &track
	}
	return dto
}

// ToAnnouncementDTOs converts a list of announcements
func ToAnnouncementDTOs(anns []models.Announcement) []AnnouncementDTO {
	out := make([]AnnouncementDTO, len(anns))
	for i, a := range anns {
		out[i] = ToAnnouncementDTO(a)
	}
	return out
}
