package dto

import (
	"time"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// TrackSummaryDTO is the minimal track shape used in nested responses
type TrackSummaryDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Committee   string `json:"committee"`
}

// ApplicantDTO is one entry of a track's applicant pipeline
type ApplicantDTO struct {
	Member    MemberDTO              `json:"member"`
	Status    models.ApplicantStatus `json:"status"`
	AppliedAt time.Time              `json:"applied_at"`
}

// TrackDTO represents a track aggregate in API responses
type TrackDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Committee   string            `json:"committee"`
	Members     []MemberDTO       `json:"members"`
	Supervisors []MemberDTO       `json:"supervisors"`
	HRs         []MemberDTO       `json:"hrs"`
	Applicants  []ApplicantDTO    `json:"applicants"`
	Courses     []TrackCourseDTO  `json:"courses"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TrackCourseDTO is a course link seen from the track side
type TrackCourseDTO struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ApplicationDTO is one of the caller's own applications
type ApplicationDTO struct {
	Track     TrackSummaryDTO        `json:"track"`
	Status    models.ApplicantStatus `json:"status"`
	AppliedAt time.Time              `json:"applied_at"`
}

// ToTrackSummaryDTO converts a track to its minimal shape
func ToTrackSummaryDTO(t models.Track) TrackSummaryDTO {
	return TrackSummaryDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Committee:   t.Committee,
	}
}

// ToTrackDTO converts a track aggregate with its membership sets
func ToTrackDTO(t models.Track) TrackDTO {
	dto := TrackDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Committee:   t.Committee,
		Members:     []MemberDTO{},
		Supervisors: []MemberDTO{},
		HRs:         []MemberDTO{},
		Applicants:  []ApplicantDTO{},
		Courses:     []TrackCourseDTO{},
		CreatedAt:   t.CreatedAt,
	}
	for _, tm := range t.Members {
		member := ToMemberDTO(tm.Member)
		switch tm.Role {
		case models.TrackRoleSupervisor:
			dto.Supervisors = append(dto.Supervisors, member)
		case models.TrackRoleHR:
			dto.HRs = append(dto.HRs, member)
		default:
			dto.Members = append(dto.Members, member)
		}
	}
	for _, a := range t.Applicants {
		dto.Applicants = append(dto.Applicants, ApplicantDTO{
			Member:    ToMemberDTO(a.Member),
			Status:    a.Status,
			AppliedAt: a.CreatedAt,
		})
	}
	for _, link := range t.Courses {
		dto.Courses = append(dto.Courses, TrackCourseDTO{
			ID:          link.Course.ID,
			Name:        link.Course.Name,
			Description: link.Course.Description,
		})
	}
	return dto
}

// ToTrackDTOs converts a list of track aggregates
func ToTrackDTOs(tracks []models.Track) []TrackDTO {
	out := make([]TrackDTO, len(tracks))
	for i, t := range tracks {
		out[i] = ToTrackDTO(t)
	}
	return out
}

// ToApplicationDTOs converts a member's applications
func ToApplicationDTOs(apps []models.TrackApplicant) []ApplicationDTO {
	out := make([]ApplicationDTO, len(apps))
	for i, a := range apps {
		out[i] = ApplicationDTO{
			Track:     ToTrackSummaryDTO(a.Track),
			Status:    a.Status,
			AppliedAt: a.CreatedAt,
		}
	}
	return out
}
