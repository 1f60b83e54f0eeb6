package dto

import (
	"time"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Committee string            `json:"committee"`
	Role      models.MemberRole `json:"role"`
	Rate      *float64          `json:"rate,omitempty"`
}

// MessageDTO represents an inbox message in API responses
type MessageDTO struct {
	ID     uint64               `json:"id"`
	Title  string               `json:"title"`
	Body   string               `json:"body"`
	Date   time.Time            `json:"date"`
	Status models.MessageStatus `json:"status"`
	Links  []models.MessageLink `json:"links"`
}

// ToMemberDTO converts a member model to its response shape
func ToMemberDTO(m models.Member) MemberDTO {
	return MemberDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Committee: m.Committee,
		Role:      m.Role,
		Rate:      m.Rate,
	}
}

// MemberTaskDTO represents an assigned progress task in API responses
type MemberTaskDTO struct {
	ID                 uint64     `json:"id"`
	MemberID           uint64     `json:"member_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	SubmissionDate     *time.Time `json:"submission_date,omitempty"`
	SubmissionLink     string     `json:"submission_link"`
	Submitted          bool       `json:"submitted"`
	HeadEvaluation     float64    `json:"head_evaluation"`
	DeadlineEvaluation float64    `json:"deadline_evaluation"`
	Rate               *float64   `json:"rate,omitempty"`
}

// ToMemberTaskDTO converts a member task to its response shape
func ToMemberTaskDTO(t models.MemberTask) MemberTaskDTO {
	return MemberTaskDTO{
		ID:                 t.ID,
		MemberID:           t.MemberID,
		Title:              t.Title,
		Description:        t.Description,
		StartDate:          t.StartDate,
		Deadline:           t.Deadline,
		SubmissionDate:     t.SubmissionDate,
		SubmissionLink:     t.SubmissionLink,
		Submitted:          t.Submitted(),
		HeadEvaluation:     t.HeadEvaluation,
		DeadlineEvaluation: t.DeadlineEvaluation,
		Rate:               t.Rate,
	}
}

// ToMemberTaskDTOs converts member tasks to their response shape
func ToMemberTaskDTOs(tasks []models.MemberTask) []MemberTaskDTO {
	out := make([]MemberTaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToMemberTaskDTO(t)
	}
	return out
}

// ToMessageDTOs converts inbox messages to their response shape
func ToMessageDTOs(msgs []models.Message) []MessageDTO {
	out := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		out[i] = MessageDTO{
			ID:     m.ID,
			Title:  m.Title,
			Body:   m.Body,
			Date:   m.Date,
			Status: m.Status,
			Links:  m.Links,
		}
	}
	return out
}
