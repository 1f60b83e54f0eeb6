package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

// TrackSysService produces read-only cross-entity rollups. It never mutates.
type TrackSysService struct {
	trackRepo  repository.TrackRepository
	courseRepo repository.CourseRepository
	memberRepo repository.MemberRepository
}

// NewTrackSysService creates a new TrackSysService.
func NewTrackSysService(trackRepo repository.TrackRepository, courseRepo repository.CourseRepository, memberRepo repository.MemberRepository) *TrackSysService {
	return &TrackSysService{
		trackRepo:  trackRepo,
		courseRepo: courseRepo,
		memberRepo: memberRepo,
	}
}

// SnapshotSummary holds the system-wide counters.
type SnapshotSummary struct {
	TotalTracks     int `json:"total_tracks"`
	TotalCourses    int `json:"total_courses"`
	TotalMembers    int `json:"total_members"`
	TotalApplicants int `json:"total_applicants"`
}

// Snapshot is the full system rollup.
type Snapshot struct {
	Tracks  []models.Track  `json:"tracks"`
	Courses []models.Course `json:"courses"`
	Members []models.Member `json:"members"`
	Summary SnapshotSummary `json:"summary"`
}

// GetSnapshot returns all tracks, courses and accepted members with counters.
func (s *TrackSysService) GetSnapshot() (*Snapshot, error) {
	tracks, err := s.trackRepo.List("Members.Member", "Applicants.Member")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	courses, err := s.courseRepo.List("Tracks.Track")
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	members, err := s.memberRepo.ListAccepted("Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	totalApplicants := 0
	for _, t := range tracks {
		totalApplicants += len(t.Applicants)
	}

	return &Snapshot{
		Tracks:  tracks,
		Courses: courses,
		Members: members,
		Summary: SnapshotSummary{
			TotalTracks:     len(tracks),
			TotalCourses:    len(courses),
			TotalMembers:    len(members),
			TotalApplicants: totalApplicants,
		},
	}, nil
}

// LeaderboardEntry is one ranked member.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	MemberID       uint64  `json:"member_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Committee      string  `json:"committee"`
	Rate           float64 `json:"rate"`
	CompletedTasks int     `json:"completed_tasks"`
}

// TrackLeaderboard is the top performers of one track.
type TrackLeaderboard struct {
	TrackID       uint64             `json:"track_id"`
	TrackName     string             `json:"track_name"`
	Committee     string             `json:"committee"`
	TopPerformers []LeaderboardEntry `json:"top_performers"`
}

// Leaderboard is the full top-performers rollup.
type Leaderboard struct {
	Tracks  []TrackLeaderboard `json:"track_leaderboards"`
	Overall []LeaderboardEntry `json:"overall,omitempty"`
}

// GetLeaderboard ranks rated members by descending rate: top 5 per track
// plus an overall top 10. Members without a rate are excluded, not ranked
// last.
func (s *TrackSysService) GetLeaderboard() (*Leaderboard, error) {
	tracks, err := s.trackRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	boards := make([]TrackLeaderboard, 0, len(tracks))
	for _, track := range tracks {
		board, err := s.trackLeaderboard(&track)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}

	top, err := s.memberRepo.ListTopRated(constants.OverallLeaderboardSize, "Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated members: %w", err)
	}
	overall := make([]LeaderboardEntry, 0, len(top))
	for i, m := range top {
		overall = append(overall, newLeaderboardEntry(i+1, m))
	}

	return &Leaderboard{Tracks: boards, Overall: overall}, nil
}

// GetTrackLeaderboard ranks one track's rated members, top 5.
func (s *TrackSysService) GetTrackLeaderboard(trackID uint64) (*TrackLeaderboard, error) {
	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	return s.trackLeaderboard(track)
}

func (s *TrackSysService) trackLeaderboard(track *models.Track) (*TrackLeaderboard, error) {
	memberships, err := s.trackRepo.ListMembers(track.ID, models.TrackRoleMember, "Member.Tasks")
	if err != nil {
		return nil, fmt.Errorf("failed to list track members: %w", err)
	}

	rated := make([]models.Member, 0, len(memberships))
	for _, tm := range memberships {
		if tm.Member.Rate != nil {
			rated = append(rated, tm.Member)
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return *rated[i].Rate > *rated[j].Rate
	})
	if len(rated) > constants.TrackLeaderboardSize {
		rated = rated[:constants.TrackLeaderboardSize]
	}

	entries := make([]LeaderboardEntry, 0, len(rated))
	for i, m := range rated {
		entries = append(entries, newLeaderboardEntry(i+1, m))
	}

	return &TrackLeaderboard{
		TrackID:       track.ID,
		TrackName:     track.Name,
		Committee:     track.Committee,
		TopPerformers: entries,
	}, nil
}

func newLeaderboardEntry(rank int, m models.Member) LeaderboardEntry {
	completed := 0
	for _, task := range m.Tasks {
		if task.Submitted() {
			completed++
		}
	}
	rate := 0.0
	if m.Rate != nil {
		rate = *m.Rate
	}
	return LeaderboardEntry{
		Rank:           rank,
		MemberID:       m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Committee:      m.Committee,
		Rate:           rate,
		CompletedTasks: completed,
	}
}
