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
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAnnouncementInvalid  = errors.New("announcement title and content are required")
)

// AnnouncementService creates announcements and broadcasts a derived message
// into every member's inbox. Broadcasts are fire-and-forget: there is no
// delivery acknowledgement, no per-member dedup key, and no retraction.
type AnnouncementService struct {
	annRepo    repository.AnnouncementRepository
	memberRepo repository.MemberRepository
	trackRepo  repository.TrackRepository
	authz      *AuthzService
	logger     zerolog.Logger
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(annRepo repository.AnnouncementRepository, memberRepo repository.MemberRepository, trackRepo repository.TrackRepository, authz *AuthzService, logger zerolog.Logger) *AnnouncementService {
	return &AnnouncementService{
		annRepo:    annRepo,
		memberRepo: memberRepo,
		trackRepo:  trackRepo,
		authz:      authz,
		logger:     logger,
	}
}

// AnnouncementInput represents parameters to create or update an announcement.
type AnnouncementInput struct {
	Title     string
	Content   string
	ExpiresAt time.Time
	TrackID   *uint64
}

// Create persists the announcement and broadcasts it. With a track id the
// actor must be head of that track's committee; without one, any head may
// post. The announcement write and the fan-out are independent: a broadcast
// failure can leave the announcement created with a partial fan-out.
func (s *AnnouncementService) Create(actorEmail string, input AnnouncementInput) (*models.Announcement, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, ErrAnnouncementInvalid
	}

	track, err := s.requireAnnouncementAuth(actor, input.TrackID)
	if err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		Title:     input.Title,
		Content:   input.Content,
		ExpiresAt: input.ExpiresAt,
		CreatorID: actor.ID,
		TrackID:   input.TrackID,
	}
	if err := s.annRepo.Create(announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	if err := s.broadcast(announcement, track); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Update mutates the announcement and performs a second, independent
// broadcast. Messages from the original broadcast are not retracted.
func (s *AnnouncementService) Update(actorEmail string, id uint64, input AnnouncementInput) (*models.Announcement, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	announcement, err := s.annRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to find announcement: %w", err)
	}

	track, err := s.requireAnnouncementAuth(actor, announcement.TrackID)
	if err != nil {
		return nil, err
	}

	announcement.Title = input.Title
	announcement.Content = input.Content
	announcement.ExpiresAt = input.ExpiresAt
	if err := s.annRepo.Update(announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	if err := s.broadcast(announcement, track); err != nil {
		return nil, err
	}
	return announcement, nil
}

// Delete removes only the announcement record; delivered messages stay.
func (s *AnnouncementService) Delete(actorEmail string, id uint64) error {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return err
	}

	announcement, err := s.annRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to find announcement: %w", err)
	}

	if _, err := s.requireAnnouncementAuth(actor, announcement.TrackID); err != nil {
		return err
	}

	if err := s.annRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}

// ListForCommittee sweeps expired announcements, then returns those of the
// head's committee tracks. The sweep is read-triggered, not a timer.
func (s *AnnouncementService) ListForCommittee(actorEmail string) ([]models.Announcement, error) {
	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireRole(actor, models.RoleHead); err != nil {
		return nil, err
	}

	if err := s.annRepo.DeleteExpired(time.Now(), nil); err != nil {
		return nil, fmt.Errorf("failed to sweep expired announcements: %w", err)
	}

	tracks, err := s.trackRepo.ListByCommittee(actor.Committee)
	if err != nil {
		return nil, fmt.Errorf("failed to list committee tracks: %w", err)
	}
	trackIDs := make([]uint64, 0, len(tracks))
	for _, t := range tracks {
		trackIDs = append(trackIDs, t.ID)
	}

	announcements, err := s.annRepo.ListByTrackIDs(trackIDs, "Creator", "Track")
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// ListForTrack sweeps the track's expired announcements, then lists the rest.
func (s *AnnouncementService) ListForTrack(actorEmail string, trackID uint64) ([]models.Announcement, error) {
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

	if err := s.annRepo.DeleteExpired(time.Now(), &trackID); err != nil {
		return nil, fmt.Errorf("failed to sweep expired announcements: %w", err)
	}

	announcements, err := s.annRepo.ListByTrackIDs([]uint64{trackID}, "Creator", "Track")
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// requireAnnouncementAuth applies the announcement gating: head-of-committee
// when a track is referenced, plain head otherwise. Returns the track, if any.
func (s *AnnouncementService) requireAnnouncementAuth(actor *models.Member, trackID *uint64) (*models.Track, error) {
	if trackID == nil {
		if err := s.authz.RequireRole(actor, models.RoleHead); err != nil {
			return nil, err
		}
		return nil, nil
	}

	track, err := s.trackRepo.FindByID(*trackID)
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

// broadcast appends the derived message to every member's inbox.
func (s *AnnouncementService) broadcast(announcement *models.Announcement, track *models.Track) error {
	ids, err := s.memberRepo.ListIDs()
	if err != nil {
		return fmt.Errorf("failed to list broadcast targets: %w", err)
	}

	var links []models.MessageLink
	if track != nil {
		links = []models.MessageLink{{
			Name: track.Name,
			URL:  fmt.Sprintf("/tracks/%d/apply", track.ID),
		}}
	}

	now := time.Now()
	msgs := make([]models.Message, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, models.Message{
			MemberID: id,
			Title:    announcement.Title,
			Body:     announcement.Content,
			Date:     now,
			Status:   models.MessageStatusUnread,
			Links:    links,
		})
	}

	if err := s.memberRepo.BroadcastMessages(msgs); err != nil {
		s.logger.Warn().
			Uint64("announcement_id", announcement.ID).
			Int("targets", len(msgs)).
			Err(err).
			Msg("announcement persisted but broadcast failed part-way")
		return fmt.Errorf("failed to broadcast announcement: %w", err)
	}

	s.logger.Info().
		Uint64("announcement_id", announcement.ID).
		Int("targets", len(msgs)).
		Msg("announcement broadcast delivered")
	return nil
}
