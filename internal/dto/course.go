package dto

import (
	"time"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// CourseDTO represents a course aggregate in API responses
type CourseDTO struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Committee   string            `json:"committee"`
	Tracks      []TrackSummaryDTO `json:"tracks"`
	Admins      []MemberDTO       `json:"admins"`
	Tasks       []TaskDTO         `json:"tasks"`
	CreatedAt   time.Time         `json:"created_at"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64     `json:"id"`
	CourseID        uint64     `json:"course_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartDate       *time.Time `json:"start_date"`
	DueDate         *time.Time `json:"due_date"`
	TaskURL         string     `json:"task_url"`
	HeadPercent     int        `json:"head_percent"`
	DeadlinePercent int        `json:"deadline_percent"`
}

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID             uint64     `json:"id"`
	TaskID         uint64     `json:"task_id"`
	MemberID       uint64     `json:"member_id"`
	Member         *MemberDTO `json:"member,omitempty"`
	Link           string     `json:"link"`
	SubmissionDate time.Time  `json:"submission_date"`
	Rate           *float64   `json:"rate"`
	Notes          string     `json:"notes"`
}

// ToCourseDTO converts a course aggregate with its links
func ToCourseDTO(course models.Course) CourseDTO {
	dto := CourseDTO{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Committee:   course.Committee,
		Tracks:      []TrackSummaryDTO{},
		Admins:      []MemberDTO{},
		Tasks:       []TaskDTO{},
		CreatedAt:   course.CreatedAt,
	}
	for _, link := range course.Tracks {
		dto.Tracks = append(dto.Tracks, ToTrackSummaryDTO(link.Track))
	}
	for _, admin := range course.Admins {
		dto.Admins = append(dto.Admins, ToMemberDTO(admin.Member))
	}
	for _, task := range course.Tasks {
		dto.Tasks = append(dto.Tasks, ToTaskDTO(task))
	}
	return dto
}

// ToCourseDTOs converts a list of course aggregates
func ToCourseDTOs(courses []models.Course) []CourseDTO {
	out := make([]CourseDTO, len(courses))
	for i, c := range courses {
		out[i] = ToCourseDTO(c)
	}
	return out
}

// ToTaskDTO converts a task to its response shape
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:              task.ID,
		CourseID:        task.CourseID,
		Title:           task.Title,
		Description:     task.Description,
		StartDate:       task.StartDate,
		DueDate:         task.DueDate,
		TaskURL:         task.TaskURL,
		HeadPercent:     task.HeadPercent,
		DeadlinePercent: task.DeadlinePercent,
	}
}

// ToSubmissionDTO converts a submission to its response shape
func ToSubmissionDTO(sub models.Submission) SubmissionDTO {
	dto := SubmissionDTO{
		ID:             sub.ID,
		TaskID:         sub.TaskID,
		MemberID:       sub.MemberID,
		Link:           sub.Link,
		SubmissionDate: sub.SubmissionDate,
		Rate:           sub.Rate,
		Notes:          sub.Notes,
	}
	if sub.Member.ID != 0 {
		member := ToMemberDTO(sub.Member)
		dto.Member = &member
	}
	return dto
}

// ToSubmissionDTOs converts a list of submissions
func ToSubmissionDTOs(subs []models.Submission) []SubmissionDTO {
	out := make([]SubmissionDTO, len(subs))
	for i, s := range subs {
		out[i] = ToSubmissionDTO(s)
	}
	return out
}
