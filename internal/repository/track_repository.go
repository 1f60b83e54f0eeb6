package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// GormTrackRepository is a GORM implementation of TrackRepository
type GormTrackRepository struct {
	db *gorm.DB
}

// NewTrackRepository creates a new TrackRepository
func NewTrackRepository(db *gorm.DB) TrackRepository {
	return &GormTrackRepository{db: db}
}

// Create creates a new track
func (r *GormTrackRepository) Create(track *models.Track) error {
	return r.db.Create(track).Error
}

// FindByID finds a track by ID with optional preloading
func (r *GormTrackRepository) FindByID(id uint64, preload ...string) (*models.Track, error) {
	var track models.Track
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&track, id).Error; err != nil {
		return nil, err
	}
	return &track, nil
}

// List retrieves all tracks
func (r *GormTrackRepository) List(preload ...string) ([]models.Track, error) {
	var tracks []models.Track
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

// ListByCommittee retrieves tracks scoped to a committee
func (r *GormTrackRepository) ListByCommittee(committee string, preload ...string) ([]models.Track, error) {
	var tracks []models.Track
	query := r.db.Where("committee = ?", committee)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&tracks).Error; err != nil {
		return nil, err
	}
	return tracks, nil
}

// Update updates a track
func (r *GormTrackRepository) Update(track *models.Track) error {
	return r.db.Save(track).Error
}

// Delete removes a track and its memberships, applicants and course links
func (r *GormTrackRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", id).Delete(&models.TrackMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("track_id = ?", id).Delete(&models.TrackApplicant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("track_id = ?", id).Delete(&models.CourseTrack{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Track{}, id).Error
	})
}

// AddMember adds a member to one of the track's sets; no-op when present
func (r *GormTrackRepository) AddMember(tm *models.TrackMember) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "track_id"}, {Name: "member_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(tm).Error
}

// RemoveMember removes a member from one of the track's sets; no-op when absent
func (r *GormTrackRepository) RemoveMember(trackID, memberID uint64, role models.TrackMemberRole) error {
	return r.db.Where("track_id = ? AND member_id = ? AND role = ?", trackID, memberID, role).
		Delete(&models.TrackMember{}).Error
}

// ListMembers lists one membership set of a track
func (r *GormTrackRepository) ListMembers(trackID uint64, role models.TrackMemberRole, preload ...string) ([]models.TrackMember, error) {
	var members []models.TrackMember
	query := r.db.Where("track_id = ? AND role = ?", trackID, role)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListTrackIDsForMember returns the tracks a member belongs to in a given set
func (r *GormTrackRepository) ListTrackIDsForMember(memberID uint64, role models.TrackMemberRole) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.TrackMember{}).
		Where("member_id = ? AND role = ?", memberID, role).
		Pluck("track_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// AddApplicant appends a new applicant entry
func (r *GormTrackRepository) AddApplicant(applicant *models.TrackApplicant) error {
	return r.db.Create(applicant).Error
}

// FindApplicant finds one applicant entry
func (r *GormTrackRepository) FindApplicant(trackID, memberID uint64) (*models.TrackApplicant, error) {
	var applicant models.TrackApplicant
	if err := r.db.Where("track_id = ? AND member_id = ?", trackID, memberID).
		First(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

// UpdateApplicantStatus mutates an applicant entry's status in place
func (r *GormTrackRepository) UpdateApplicantStatus(trackID, memberID uint64, status models.ApplicantStatus) error {
	return r.db.Model(&models.TrackApplicant{}).
		Where("track_id = ? AND member_id = ?", trackID, memberID).
		Update("status", status).Error
}

// ListApplications lists a member's applications across all tracks
func (r *GormTrackRepository) ListApplications(memberID uint64, preload ...string) ([]models.TrackApplicant, error) {
	var applications []models.TrackApplicant
	query := r.db.Where("member_id = ?", memberID)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}
