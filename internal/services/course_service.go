package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseNameRequired = errors.New("course name cannot be empty")
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskTitleRequired  = errors.New("task title cannot be empty")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAdminNotFound      = errors.New("course admin not found")
)

// TaskStatus is the per-member view of a task, derived from submissions.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusSubmitted TaskStatus = "submitted"
	TaskStatusCompleted TaskStatus = "completed"
)

// CourseService owns the course aggregate: nested tasks and submissions,
// rating, and the track<->course relation.
type CourseService struct {
	courseRepo repository.CourseRepository
	trackRepo  repository.TrackRepository
	memberRepo repository.MemberRepository
	authz      *AuthzService
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo repository.CourseRepository, trackRepo repository.TrackRepository, memberRepo repository.MemberRepository, authz *AuthzService) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		trackRepo:  trackRepo,
		memberRepo: memberRepo,
		authz:      authz,
	}
}

// CreateCourseInput represents parameters to create a new course.
type CreateCourseInput struct {
	Name        string
	Description string
	TrackID     uint64
	AdminIDs    []uint64
}

// CreateCourse creates a course linked to the given track. The actor must be
// head of the track's committee and every admin id must resolve to an
// existing member.
func (s *CourseService) CreateCourse(actorEmail string, input CreateCourseInput) (*models.Course, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrCourseNameRequired
	}

	track, err := s.trackRepo.FindByID(input.TrackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, track.Committee); err != nil {
		return nil, err
	}

	adminIDs := uniqueUint64(input.AdminIDs)
	if missing, err := s.findMissingMember(adminIDs); err != nil {
		return nil, err
	} else if missing != 0 {
		return nil, fmt.Errorf("%w: member %d", ErrAdminNotFound, missing)
	}

	course := &models.Course{
		Name:        input.Name,
		Description: input.Description,
		Committee:   track.Committee,
	}

	if err := s.courseRepo.CreateWithLinks(course, track.ID, adminIDs); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	return s.courseRepo.FindByID(course.ID, "Tracks.Track", "Admins.Member", "Tasks")
}

// ListCourses returns all courses with their track links and tasks.
func (s *CourseService) ListCourses() ([]models.Course, error) {
	courses, err := s.courseRepo.List("Tracks.Track", "Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetCourse returns a single course with its relations.
func (s *CourseService) GetCourse(courseID uint64) (*models.Course, error) {
	course, err := s.courseRepo.FindByID(courseID, "Tracks.Track", "Admins.Member", "Tasks.Submissions")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return course, nil
}

// AddTrackToCourse links a track to a course. The edge table is the single
// source of truth for the relation, so both derived views stay in step.
// Adding an existing link is a no-op.
func (s *CourseService) AddTrackToCourse(actorEmail string, courseID, trackID uint64) (*models.Course, error) {
	if err := s.requireTrackEdgeAuth(actorEmail, courseID, trackID); err != nil {
		return nil, err
	}
	if err := s.courseRepo.AddTrack(courseID, trackID); err != nil {
		return nil, fmt.Errorf("failed to link track: %w", err)
	}
	return s.courseRepo.FindByID(courseID, "Tracks.Track")
}

// RemoveTrackFromCourse unlinks a track from a course; no-op when absent.
func (s *CourseService) RemoveTrackFromCourse(actorEmail string, courseID, trackID uint64) (*models.Course, error) {
	if err := s.requireTrackEdgeAuth(actorEmail, courseID, trackID); err != nil {
		return nil, err
	}
	if err := s.courseRepo.RemoveTrack(courseID, trackID); err != nil {
		return nil, fmt.Errorf("failed to unlink track: %w", err)
	}
	return s.courseRepo.FindByID(courseID, "Tracks.Track")
}

// TaskInput represents parameters to create a task.
type TaskInput struct {
	Title           string
	Description     string
	StartDate       *time.Time
	DueDate         *time.Time
	TaskURL         string
	HeadPercent     *int
	DeadlinePercent *int
}

// AddTask appends a task to a course. Task mutations require
// head-of-committee against the course's committee.
func (s *CourseService) AddTask(actorEmail string, courseID uint64, input TaskInput) (*models.Task, error) {
	course, err := s.requireCourseHead(actorEmail, courseID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	task := &models.Task{
		CourseID:        course.ID,
		Title:           input.Title,
		Description:     input.Description,
		StartDate:       input.StartDate,
		DueDate:         input.DueDate,
		TaskURL:         input.TaskURL,
		HeadPercent:     50,
		DeadlinePercent: 20,
	}
	if input.HeadPercent != nil {
		task.HeadPercent = *input.HeadPercent
	}
	if input.DeadlinePercent != nil {
		task.DeadlinePercent = *input.DeadlinePercent
	}

	if err := s.courseRepo.CreateTask(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput carries optional task field updates.
type UpdateTaskInput struct {
	Title           *string
	Description     *string
	StartDate       *time.Time
	DueDate         *time.Time
	TaskURL         *string
	HeadPercent     *int
	DeadlinePercent *int
}

// UpdateTask updates a task within a course.
func (s *CourseService) UpdateTask(actorEmail string, courseID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if _, err := s.requireCourseHead(actorEmail, courseID); err != nil {
		return nil, err
	}

	task, err := s.courseRepo.FindTask(courseID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTaskTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.StartDate != nil {
		task.StartDate = input.StartDate
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.TaskURL != nil {
		task.TaskURL = *input.TaskURL
	}
	if input.HeadPercent != nil {
		task.HeadPercent = *input.HeadPercent
	}
	if input.DeadlinePercent != nil {
		task.DeadlinePercent = *input.DeadlinePercent
	}

	if err := s.courseRepo.UpdateTask(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// RemoveTask deletes a task and its submissions.
func (s *CourseService) RemoveTask(actorEmail string, courseID, taskID uint64) error {
	if _, err := s.requireCourseHead(actorEmail, courseID); err != nil {
		return err
	}
	if _, err := s.courseRepo.FindTask(courseID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}
	if err := s.courseRepo.DeleteTask(courseID, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// SubmitTask appends a new submission for the caller. Submitting twice for
// the same task produces two submission records; status derivation keeps the
// first one authoritative.
func (s *CourseService) SubmitTask(actorEmail string, courseID, taskID uint64, link string) (*models.Submission, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	task, err := s.courseRepo.FindTask(courseID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if link == "" {
		link = constants.UnsubmittedLink
	}

	sub := &models.Submission{
		TaskID:         task.ID,
		MemberID:       member.ID,
		Link:           link,
		SubmissionDate: time.Now(),
	}
	if err := s.courseRepo.CreateSubmission(sub); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}
	return sub, nil
}

// RateSubmission overwrites a submission's rating in place. Rating the same
// submission again replaces the previous value.
func (s *CourseService) RateSubmission(actorEmail string, courseID, taskID, submissionID uint64, rate float64, notes string) (*models.Submission, error) {
	if _, err := s.requireCourseHead(actorEmail, courseID); err != nil {
		return nil, err
	}

	if _, err := s.courseRepo.FindTask(courseID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	sub, err := s.courseRepo.FindSubmission(taskID, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}

	sub.Rate = &rate
	if notes != "" {
		sub.Notes = notes
	}
	if err := s.courseRepo.UpdateSubmission(sub); err != nil {
		return nil, fmt.Errorf("failed to rate submission: %w", err)
	}
	return sub, nil
}

// ListTaskSubmissions lists a task's submissions in insertion order.
func (s *CourseService) ListTaskSubmissions(courseID, taskID uint64) ([]models.Submission, error) {
	if _, err := s.courseRepo.FindTask(courseID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	subs, err := s.courseRepo.ListSubmissions(taskID, "Member")
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// DeriveTaskStatus derives one member's view of a task from its submissions.
// The first submission in list order by that member is authoritative: absent
// means pending, unrated means submitted, rated means completed.
func DeriveTaskStatus(memberID uint64, task *models.Task) TaskStatus {
	for _, sub := range task.Submissions {
		if sub.MemberID != memberID {
			continue
		}
		if sub.Rated() {
			return TaskStatusCompleted
		}
		return TaskStatusSubmitted
	}
	return TaskStatusPending
}

// CompletedTask is one rated submission in a completed-tasks listing.
type CompletedTask struct {
	CourseID    uint64         `json:"course_id"`
	CourseName  string         `json:"course_name"`
	TaskID      uint64         `json:"task_id"`
	Title       string         `json:"title"`
	Member      *models.Member `json:"member,omitempty"`
	Rate        float64        `json:"rate"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// GetCompletedTasks scans all course/task/submission triples and returns the
// rated ones, optionally filtered by course or member.
func (s *CourseService) GetCompletedTasks(courseID, memberID *uint64) ([]CompletedTask, error) {
	var (
		courses []models.Course
		err     error
	)
	if courseID != nil {
		course, findErr := s.courseRepo.FindByID(*courseID, "Tasks.Submissions.Member")
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return nil, ErrCourseNotFound
			}
			return nil, fmt.Errorf("failed to find course: %w", findErr)
		}
		courses = []models.Course{*course}
	} else {
		courses, err = s.courseRepo.List("Tasks.Submissions.Member")
		if err != nil {
			return nil, fmt.Errorf("failed to list courses: %w", err)
		}
	}

	completed := make([]CompletedTask, 0)
	for _, course := range courses {
		for _, task := range course.Tasks {
			for _, sub := range task.Submissions {
				if !sub.Rated() {
					continue
				}
				if memberID != nil && sub.MemberID != *memberID {
					continue
				}
				member := sub.Member
				completed = append(completed, CompletedTask{
					CourseID:    course.ID,
					CourseName:  course.Name,
					TaskID:      task.ID,
					Title:       task.Title,
					Member:      &member,
					Rate:        *sub.Rate,
					SubmittedAt: sub.SubmissionDate,
				})
			}
		}
	}
	return completed, nil
}

// MemberTaskView is one task in a member's task listing with derived status.
type MemberTaskView struct {
	CourseID   uint64             `json:"course_id"`
	CourseName string             `json:"course_name"`
	TaskID     uint64             `json:"task_id"`
	Title      string             `json:"title"`
	DueDate    *time.Time         `json:"due_date"`
	Status     TaskStatus         `json:"status"`
	Submission *models.Submission `json:"submission,omitempty"`
}

// MyTasks lists the tasks of every course linked to a track the caller
// belongs to, each with the caller's derived status.
func (s *CourseService) MyTasks(actorEmail string) ([]MemberTaskView, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	trackIDs, err := s.trackRepo.ListTrackIDsForMember(member.ID, models.TrackRoleMember)
	if err != nil {
		return nil, fmt.Errorf("failed to list member tracks: %w", err)
	}

	courses, err := s.courseRepo.ListByTrackIDs(trackIDs, "Tasks.Submissions")
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	views := make([]MemberTaskView, 0)
	for _, course := range courses {
		for i := range course.Tasks {
			task := course.Tasks[i]
			view := MemberTaskView{
				CourseID:   course.ID,
				CourseName: course.Name,
				TaskID:     task.ID,
				Title:      task.Title,
				DueDate:    task.DueDate,
				Status:     DeriveTaskStatus(member.ID, &task),
			}
			for j := range task.Submissions {
				if task.Submissions[j].MemberID == member.ID {
					view.Submission = &task.Submissions[j]
					break
				}
			}
			views = append(views, view)
		}
	}
	return views, nil
}

// requireCourseHead resolves the actor and checks head-of-committee against
// the course. Returns the course on success.
func (s *CourseService) requireCourseHead(actorEmail string, courseID uint64) (*models.Course, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, course.Committee); err != nil {
		return nil, err
	}
	return course, nil
}

// requireTrackEdgeAuth gates course<->track link mutations: the course must
// exist and the actor must be head of the target track's committee.
func (s *CourseService) requireTrackEdgeAuth(actorEmail string, courseID, trackID uint64) error {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return err
	}

	if _, err := s.courseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to find course: %w", err)
	}

	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrackNotFound
		}
		return fmt.Errorf("failed to find track: %w", err)
	}

	return s.authz.RequireHeadOfCommittee(actor, track.Committee)
}

// findMissingMember returns the first id with no member record, or zero.
func (s *CourseService) findMissingMember(ids []uint64) (uint64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	members, err := s.memberRepo.ListByIDs(ids)
	if err != nil {
		return 0, fmt.Errorf("failed to verify admins: %w", err)
	}
	found := make(map[uint64]struct{}, len(members))
	for _, m := range members {
		found[m.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return id, nil
		}
	}
	return 0, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
