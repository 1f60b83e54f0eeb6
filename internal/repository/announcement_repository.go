package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// GormAnnouncementRepository is a GORM implementation of AnnouncementRepository
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create persists a new announcement
func (r *GormAnnouncementRepository) Create(a *models.Announcement) error {
	return r.db.Create(a).Error
}

// FindByID finds an announcement by ID with optional preloading
func (r *GormAnnouncementRepository) FindByID(id uint64, preload ...string) (*models.Announcement, error) {
	var a models.Announcement
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// Update updates an announcement
func (r *GormAnnouncementRepository) Update(a *models.Announcement) error {
	return r.db.Save(a).Error
}

// Delete removes only the announcement record; delivered messages stay
func (r *GormAnnouncementRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}

// DeleteExpired removes announcements whose expiry has passed, optionally
// scoped to a single track
func (r *GormAnnouncementRepository) DeleteExpired(before time.Time, trackID *uint64) error {
	query := r.db.Where("expires_at < ?", before)
	if trackID != nil {
		query = query.Where("track_id = ?", *trackID)
	}
	return query.Delete(&models.Announcement{}).Error
}

// ListByTrackIDs lists announcements for the given tracks
func (r *GormAnnouncementRepository) ListByTrackIDs(trackIDs []uint64, preload ...string) ([]models.Announcement, error) {
	var announcements []models.Announcement
	if len(trackIDs) == 0 {
		return announcements, nil
	}
	query := r.db.Where("track_id IN ?", trackIDs).Order("created_at DESC")
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, nil
}
