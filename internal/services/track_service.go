package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

var (
	ErrTrackNotFound     = errors.New("track not found")
	ErrTrackNameRequired = errors.New("track name cannot be empty")
	ErrAlreadyApplied    = errors.New("member has already applied to this track")
	ErrApplicantNotFound = errors.New("applicant not found in this track")
	ErrInvalidDecision   = errors.New("decision must be accepted or rejected")
)

// TrackService owns the track aggregate: membership sets and the applicant
// state machine (pending -> accepted | rejected).
type TrackService struct {
	trackRepo  repository.TrackRepository
	memberRepo repository.MemberRepository
	authz      *AuthzService
	logger     zerolog.Logger
}

// NewTrackService creates a new TrackService.
func NewTrackService(trackRepo repository.TrackRepository, memberRepo repository.MemberRepository, authz *AuthzService, logger zerolog.Logger) *TrackService {
	return &TrackService{
		trackRepo:  trackRepo,
		memberRepo: memberRepo,
		authz:      authz,
		logger:     logger,
	}
}

// CreateTrackInput represents parameters to create a new track.
type CreateTrackInput struct {
	Name        string
	Description string
}

// CreateTrack creates a track owned by the actor's committee. The committee
// is copied from the actor and never changes afterwards.
func (s *TrackService) CreateTrack(actorEmail string, input CreateTrackInput) (*models.Track, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(actor, models.RoleHead); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTrackNameRequired
	}

	track := &models.Track{
		Name:        input.Name,
		Description: input.Description,
		Committee:   actor.Committee,
	}

	if err := s.trackRepo.Create(track); err != nil {
		return nil, fmt.Errorf("failed to create track: %w", err)
	}

	return track, nil
}

// ListTracks returns all tracks with their membership sets and course links.
func (s *TrackService) ListTracks() ([]models.Track, error) {
	tracks, err := s.trackRepo.List("Members.Member", "Applicants.Member", "Courses.Course")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// GetTrack returns a single track with its relations.
func (s *TrackService) GetTrack(trackID uint64) (*models.Track, error) {
	track, err := s.trackRepo.FindByID(trackID, "Members.Member", "Applicants.Member", "Courses.Course")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}
	return track, nil
}

// UpdateTrackInput carries optional track field updates. The committee is
// immutable and deliberately absent.
type UpdateTrackInput struct {
	Name        *string
	Description *string
}

// UpdateTrack updates a track's name or description.
func (s *TrackService) UpdateTrack(actorEmail string, trackID uint64, input UpdateTrackInput) (*models.Track, error) {
	track, err := s.requireTrackHead(actorEmail, trackID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrTrackNameRequired
		}
		track.Name = *input.Name
	}
	if input.Description != nil {
		track.Description = *input.Description
	}

	if err := s.trackRepo.Update(track); err != nil {
		return nil, fmt.Errorf("failed to update track: %w", err)
	}
	return track, nil
}

// DeleteTrack removes a track with its memberships, applicants and course links.
func (s *TrackService) DeleteTrack(actorEmail string, trackID uint64) error {
	if _, err := s.requireTrackHead(actorEmail, trackID); err != nil {
		return err
	}
	if err := s.trackRepo.Delete(trackID); err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}
	return nil
}

// Apply appends a pending applicant entry for the caller. A member may hold
// at most one applicant entry per track.
func (s *TrackService) Apply(actorEmail string, trackID uint64) (*models.TrackApplicant, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	if _, err := s.trackRepo.FindByID(trackID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	if _, err := s.trackRepo.FindApplicant(trackID, member.ID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}

	applicant := &models.TrackApplicant{
		TrackID:  trackID,
		MemberID: member.ID,
		Status:   models.ApplicantPending,
	}
	if err := s.trackRepo.AddApplicant(applicant); err != nil {
		return nil, fmt.Errorf("failed to add applicant: %w", err)
	}

	return applicant, nil
}

// Decide sets an applicant entry to accepted or rejected and, as a second
// independent write, delivers the decision message to the member's inbox.
// The two writes are not transactional: a notification failure can leave the
// status changed with no message delivered. Re-deciding an already-decided
// entry is allowed and re-notifies.
func (s *TrackService) Decide(actorEmail string, trackID, memberID uint64, decision models.ApplicantStatus) (*models.TrackApplicant, error) {
	if decision != models.ApplicantAccepted && decision != models.ApplicantRejected {
		return nil, ErrInvalidDecision
	}

	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	member, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireHeadOfCommittee(actor, track.Committee); err != nil {
		return nil, err
	}

	applicant, err := s.trackRepo.FindApplicant(trackID, member.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}

	if err := s.trackRepo.UpdateApplicantStatus(trackID, member.ID, decision); err != nil {
		return nil, fmt.Errorf("failed to update applicant status: %w", err)
	}
	applicant.Status = decision

	msg := decisionMessage(track.Name, member.ID, decision)
	if err := s.memberRepo.AppendMessage(&msg); err != nil {
		s.logger.Warn().
			Uint64("track_id", trackID).
			Uint64("member_id", member.ID).
			Err(err).
			Msg("applicant status updated but notification delivery failed")
		return nil, fmt.Errorf("failed to notify applicant: %w", err)
	}

	return applicant, nil
}

func decisionMessage(trackName string, memberID uint64, decision models.ApplicantStatus) models.Message {
	msg := models.Message{
		MemberID: memberID,
		Date:     time.Now(),
		Status:   models.MessageStatusUnread,
	}
	if decision == models.ApplicantAccepted {
		msg.Title = fmt.Sprintf("Application Accepted - %s", trackName)
		msg.Body = fmt.Sprintf("Congratulations! Your application to join %s track has been accepted. Welcome to the team!", trackName)
	} else {
		msg.Title = fmt.Sprintf("Application Update - %s", trackName)
		msg.Body = fmt.Sprintf("Thank you for your interest in joining %s track. Unfortunately, your application was not accepted at this time. We encourage you to apply again in the future.", trackName)
	}
	return msg
}

// AddMember adds a member to the track's member set.
func (s *TrackService) AddMember(actorEmail string, trackID, memberID uint64) error {
	return s.addToSet(actorEmail, trackID, memberID, models.TrackRoleMember)
}

// RemoveMember removes a member from the track's member set.
func (s *TrackService) RemoveMember(actorEmail string, trackID, memberID uint64) error {
	return s.removeFromSet(actorEmail, trackID, memberID, models.TrackRoleMember)
}

// AddSupervisor adds a member to the track's supervisor set.
func (s *TrackService) AddSupervisor(actorEmail string, trackID, memberID uint64) error {
	return s.addToSet(actorEmail, trackID, memberID, models.TrackRoleSupervisor)
}

// RemoveSupervisor removes a member from the track's supervisor set.
func (s *TrackService) RemoveSupervisor(actorEmail string, trackID, memberID uint64) error {
	return s.removeFromSet(actorEmail, trackID, memberID, models.TrackRoleSupervisor)
}

// AddHR adds a member to the track's HR set.
func (s *TrackService) AddHR(actorEmail string, trackID, memberID uint64) error {
	return s.addToSet(actorEmail, trackID, memberID, models.TrackRoleHR)
}

// RemoveHR removes a member from the track's HR set.
func (s *TrackService) RemoveHR(actorEmail string, trackID, memberID uint64) error {
	return s.removeFromSet(actorEmail, trackID, memberID, models.TrackRoleHR)
}

func (s *TrackService) addToSet(actorEmail string, trackID, memberID uint64, role models.TrackMemberRole) error {
	if _, err := s.requireTrackHead(actorEmail, trackID); err != nil {
		return err
	}
	if _, err := s.memberRepo.FindByID(memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find member: %w", err)
	}

	tm := &models.TrackMember{
		TrackID:  trackID,
		MemberID: memberID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.trackRepo.AddMember(tm); err != nil {
		return fmt.Errorf("failed to add track %s: %w", role, err)
	}
	return nil
}

func (s *TrackService) removeFromSet(actorEmail string, trackID, memberID uint64, role models.TrackMemberRole) error {
	if _, err := s.requireTrackHead(actorEmail, trackID); err != nil {
		return err
	}
	if err := s.trackRepo.RemoveMember(trackID, memberID, role); err != nil {
		return fmt.Errorf("failed to remove track %s: %w", role, err)
	}
	return nil
}

// ListApplicants returns every track of the actor's committee with its
// applicant pipeline.
func (s *TrackService) ListApplicants(actorEmail string) ([]models.Track, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(actor, models.RoleHead); err != nil {
		return nil, err
	}

	tracks, err := s.trackRepo.ListByCommittee(actor.Committee, "Applicants.Member")
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return tracks, nil
}

// ListTrackApplicants returns the applicant pipeline of one track.
func (s *TrackService) ListTrackApplicants(actorEmail string, trackID uint64) (*models.Track, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	track, err := s.trackRepo.FindByID(trackID, "Applicants.Member")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, track.Committee); err != nil {
		return nil, err
	}
	return track, nil
}

// MyApplications returns the caller's applications across all tracks.
func (s *TrackService) MyApplications(actorEmail string) ([]models.TrackApplicant, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	applications, err := s.trackRepo.ListApplications(member.ID, "Track")
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return applications, nil
}

// requireTrackHead resolves the actor and checks head-of-committee against
// the track. Returns the track on success.
func (s *TrackService) requireTrackHead(actorEmail string, trackID uint64) (*models.Track, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	track, err := s.trackRepo.FindByID(trackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrackNotFound
		}
		return nil, fmt.Errorf("failed to find track: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, track.Committee); err != nil {
		return nil, err
	}
	return track, nil
}
