package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

// GormCourseRepository is a GORM implementation of CourseRepository
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &GormCourseRepository{db: db}
}

// withPreloads applies the requested preloads. Submission preloads are pinned
// to insertion order because task status derivation takes the first matching
// submission.
func withPreloads(query *gorm.DB, preload []string) *gorm.DB {
	for _, p := range preload {
		if p == "Submissions" || strings.HasSuffix(p, ".Submissions") {
			query = query.Preload(p, func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
			continue
		}
		query = query.Preload(p)
	}
	return query
}

// CreateWithLinks creates the course, its initial track edge and its admin
// links in one unit of work
func (r *GormCourseRepository) CreateWithLinks(course *models.Course, trackID uint64, adminIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}

		link := models.CourseTrack{CourseID: course.ID, TrackID: trackID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		for _, adminID := range adminIDs {
			admin := models.CourseAdmin{CourseID: course.ID, MemberID: adminID}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds a course by ID with optional preloading
func (r *GormCourseRepository) FindByID(id uint64, preload ...string) (*models.Course, error) {
	var course models.Course
	query := withPreloads(r.db, preload)
	if err := query.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// List retrieves all courses
func (r *GormCourseRepository) List(preload ...string) ([]models.Course, error) {
	var courses []models.Course
	query := withPreloads(r.db, preload)
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// ListByTrackIDs lists courses linked to any of the given tracks
func (r *GormCourseRepository) ListByTrackIDs(trackIDs []uint64, preload ...string) ([]models.Course, error) {
	var courses []models.Course
	if len(trackIDs) == 0 {
		return courses, nil
	}
	sub := r.db.Model(&models.CourseTrack{}).
		Select("course_id").
		Where("track_id IN ?", trackIDs)
	query := withPreloads(r.db.Where("id IN (?)", sub), preload)
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// Update updates a course
func (r *GormCourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete removes a course with its tasks, submissions, admins and track links
func (r *GormCourseRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&models.Task{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseTrack{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseAdmin{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, id).Error
	})
}

// AddTrack inserts a course<->track edge; no-op when it already exists
func (r *GormCourseRepository) AddTrack(courseID, trackID uint64) error {
	link := models.CourseTrack{CourseID: courseID, TrackID: trackID}
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_id"}, {Name: "track_id"}},
			DoNothing: true,
		}).
		Create(&link).Error
}

// RemoveTrack deletes a course<->track edge; no-op when absent
func (r *GormCourseRepository) RemoveTrack(courseID, trackID uint64) error {
	return r.db.Where("course_id = ? AND track_id = ?", courseID, trackID).
		Delete(&models.CourseTrack{}).Error
}

// HasTrack reports whether the course<->track edge exists
func (r *GormCourseRepository) HasTrack(courseID, trackID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.CourseTrack{}).
		Where("course_id = ? AND track_id = ?", courseID, trackID).
		Count(&count).Error
	return count > 0, err
}

// CreateTask appends a task to a course
func (r *GormCourseRepository) CreateTask(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindTask finds a task within a course
func (r *GormCourseRepository) FindTask(courseID, taskID uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := withPreloads(r.db.Where("course_id = ?", courseID), preload)
	if err := query.First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask updates a task
func (r *GormCourseRepository) UpdateTask(task *models.Task) error {
	return r.db.Save(task).Error
}

// DeleteTask removes a task and its submissions
func (r *GormCourseRepository) DeleteTask(courseID, taskID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&models.Submission{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", courseID).Delete(&models.Task{}, taskID).Error
	})
}

// CreateSubmission appends a new submission
func (r *GormCourseRepository) CreateSubmission(sub *models.Submission) error {
	return r.db.Create(sub).Error
}

// FindSubmission finds a submission within a task
func (r *GormCourseRepository) FindSubmission(taskID, submissionID uint64) (*models.Submission, error) {
	var sub models.Submission
	if err := r.db.Where("task_id = ?", taskID).First(&sub, submissionID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateSubmission updates a submission (rating fields)
func (r *GormCourseRepository) UpdateSubmission(sub *models.Submission) error {
	return r.db.Save(sub).Error
}

// ListSubmissions lists a task's submissions in insertion order
func (r *GormCourseRepository) ListSubmissions(taskID uint64, preload ...string) ([]models.Submission, error) {
	var subs []models.Submission
	query := r.db.Where("task_id = ?", taskID).Order("id ASC")
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}
