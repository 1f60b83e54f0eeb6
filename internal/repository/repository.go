package repository

import (
	"time"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/utils"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create creates a new member
	Create(member *models.Member) error

	// FindByID finds a member by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Member, error)

	// FindByEmail finds a member by email
	FindByEmail(email string) (*models.Member, error)

	// ListByIDs returns the members matching the given IDs
	ListByIDs(ids []uint64) ([]models.Member, error)

	// ListIDs returns the IDs of every member (fan-out targets)
	ListIDs() ([]uint64, error)

	// ListAccepted returns members whose role is past the applicant stage
	ListAccepted(preload ...string) ([]models.Member, error)

	// ListTopRated returns rated members ordered by rate descending
	ListTopRated(limit int, preload ...string) ([]models.Member, error)

	// List returns a page of members with the total count
	List(params utils.PaginationParams) ([]models.Member, int64, error)

	// ListInbox returns a member's inbox newest-first
	ListInbox(memberID uint64) ([]models.Message, error)

	// FindMessage finds one message in a member's inbox
	FindMessage(memberID, messageID uint64) (*models.Message, error)

	// UpdateMessageStatus sets the status of one inbox message
	UpdateMessageStatus(memberID, messageID uint64, status models.MessageStatus) error

	// AppendMessage appends a single message to a member's inbox
	AppendMessage(msg *models.Message) error

	// CreateMemberTask appends a task-progress record to a member
	CreateMemberTask(task *models.MemberTask) error

	// FindMemberTask finds one of a member's task records
	FindMemberTask(memberID, taskID uint64) (*models.MemberTask, error)

	// ListMemberTasks lists a member's task records
	ListMemberTasks(memberID uint64) ([]models.MemberTask, error)

	// UpdateMemberTask updates a task record's submission and evaluation fields
	UpdateMemberTask(task *models.MemberTask) error

	// UpdateRate sets a member's aggregate rate
	UpdateRate(memberID uint64, rate float64) error

	// BroadcastMessages inserts one inbox message per target member
	BroadcastMessages(msgs []models.Message) error
}

// TrackRepository defines the interface for track aggregate data access
type TrackRepository interface {
	Create(track *models.Track) error
	FindByID(id uint64, preload ...string) (*models.Track, error)
	List(preload ...string) ([]models.Track, error)
	ListByCommittee(committee string, preload ...string) ([]models.Track, error)
	Update(track *models.Track) error

	// Delete removes a track and its memberships, applicants and course links
	Delete(id uint64) error

	// AddMember adds a member to one of the track's sets; no-op when present
	AddMember(tm *models.TrackMember) error

	// RemoveMember removes a member from one of the track's sets; no-op when absent
	RemoveMember(trackID, memberID uint64, role models.TrackMemberRole) error

	// ListMembers lists one membership set of a track
	ListMembers(trackID uint64, role models.TrackMemberRole, preload ...string) ([]models.TrackMember, error)

	// ListTrackIDsForMember returns the tracks a member belongs to in a given set
	ListTrackIDsForMember(memberID uint64, role models.TrackMemberRole) ([]uint64, error)

	AddApplicant(applicant *models.TrackApplicant) error
	FindApplicant(trackID, memberID uint64) (*models.TrackApplicant, error)
	UpdateApplicantStatus(trackID, memberID uint64, status models.ApplicantStatus) error

	// ListApplications lists a member's applications across all tracks
	ListApplications(memberID uint64, preload ...string) ([]models.TrackApplicant, error)
}

// CourseRepository defines the interface for course aggregate data access
type CourseRepository interface {
	// CreateWithLinks creates the course, its initial track edge and its
	// admin links in one unit of work
	CreateWithLinks(course *models.Course, trackID uint64, adminIDs []uint64) error

	FindByID(id uint64, preload ...string) (*models.Course, error)
	List(preload ...string) ([]models.Course, error)

	// ListByTrackIDs lists courses linked to any of the given tracks
	ListByTrackIDs(trackIDs []uint64, preload ...string) ([]models.Course, error)

	Update(course *models.Course) error
	Delete(id uint64) error

	// AddTrack inserts a course<->track edge; no-op when it already exists
	AddTrack(courseID, trackID uint64) error

	// RemoveTrack deletes a course<->track edge; no-op when absent
	RemoveTrack(courseID, trackID uint64) error

	HasTrack(courseID, trackID uint64) (bool, error)

	CreateTask(task *models.Task) error
	FindTask(courseID, taskID uint64, preload ...string) (*models.Task, error)
	UpdateTask(task *models.Task) error
	DeleteTask(courseID, taskID uint64) error

	CreateSubmission(sub *models.Submission) error
	FindSubmission(taskID, submissionID uint64) (*models.Submission, error)
	UpdateSubmission(sub *models.Submission) error
	ListSubmissions(taskID uint64, preload ...string) ([]models.Submission, error)
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(a *models.Announcement) error
	FindByID(id uint64, preload ...string) (*models.Announcement, error)
	Update(a *models.Announcement) error
	Delete(id uint64) error

	// DeleteExpired removes announcements whose expiry has passed, optionally
	// scoped to a single track. Called lazily before every list.
	DeleteExpired(before time.Time, trackID *uint64) error

	// ListByTrackIDs lists announcements for the given tracks
	ListByTrackIDs(trackIDs []uint64, preload ...string) ([]models.Announcement, error)
}
