package repository

import (
	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/database"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/utils"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Create creates a new member
func (r *GormMemberRepository) Create(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindByID finds a member by ID with optional preloading
func (r *GormMemberRepository) FindByID(id uint64, preload ...string) (*models.Member, error) {
	var member models.Member
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByEmail finds a member by email
func (r *GormMemberRepository) FindByEmail(email string) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListByIDs returns the members matching the given IDs
func (r *GormMemberRepository) ListByIDs(ids []uint64) ([]models.Member, error) {
	var members []models.Member
	if len(ids) == 0 {
		return members, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListIDs returns the IDs of every member
func (r *GormMemberRepository) ListIDs() ([]uint64, error) {
	var ids []uint64
	if err := r.db.Model(&models.Member{}).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListAccepted returns members whose role is past the applicant stage
func (r *GormMemberRepository) ListAccepted(preload ...string) ([]models.Member, error) {
	var members []models.Member
	query := r.db.Where("role <> ?", models.RoleNotAccepted)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListTopRated returns rated members ordered by rate descending. Members
// without a rate are excluded, not ranked last.
func (r *GormMemberRepository) ListTopRated(limit int, preload ...string) ([]models.Member, error) {
	var members []models.Member
	query := r.db.
		Where("role <> ?", models.RoleNotAccepted).
		Where("rate IS NOT NULL").
		Order("rate DESC").
		Limit(limit)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// List returns a page of members with the total count
func (r *GormMemberRepository) List(params utils.PaginationParams) ([]models.Member, int64, error) {
	var total int64
	if err := r.db.Model(&models.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.Member
	if err := r.db.Scopes(database.Paginate(params)).Order("id ASC").Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ListInbox returns a member's inbox newest-first
func (r *GormMemberRepository) ListInbox(memberID uint64) ([]models.Message, error) {
	var msgs []models.Message
	if err := r.db.Where("member_id = ?", memberID).Order("date DESC, id DESC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// FindMessage finds one message in a member's inbox
func (r *GormMemberRepository) FindMessage(memberID, messageID uint64) (*models.Message, error) {
	var msg models.Message
	if err := r.db.Where("member_id = ?", memberID).First(&msg, messageID).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessageStatus sets the status of one inbox message
func (r *GormMemberRepository) UpdateMessageStatus(memberID, messageID uint64, status models.MessageStatus) error {
	return r.db.Model(&models.Message{}).
		Where("id = ? AND member_id = ?", messageID, memberID).
		Update("status", status).Error
}

// AppendMessage appends a single message to a member's inbox
func (r *GormMemberRepository) AppendMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

// CreateMemberTask appends a task-progress record to a member
func (r *GormMemberRepository) CreateMemberTask(task *models.MemberTask) error {
	return r.db.Create(task).Error
}

// FindMemberTask finds one of a member's task records
func (r *GormMemberRepository) FindMemberTask(memberID, taskID uint64) (*models.MemberTask, error) {
	var task models.MemberTask
	if err := r.db.Where("member_id = ?", memberID).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListMemberTasks lists a member's task records in assignment order
func (r *GormMemberRepository) ListMemberTasks(memberID uint64) ([]models.MemberTask, error) {
	var tasks []models.MemberTask
	if err := r.db.Where("member_id = ?", memberID).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateMemberTask updates a task record's submission and evaluation fields
func (r *GormMemberRepository) UpdateMemberTask(task *models.MemberTask) error {
	return r.db.Save(task).Error
}

// UpdateRate sets a member's aggregate rate
func (r *GormMemberRepository) UpdateRate(memberID uint64, rate float64) error {
	return r.db.Model(&models.Member{}).
		Where("id = ?", memberID).
		Update("rate", rate).Error
}

// BroadcastMessages inserts one inbox message per target member. The insert
// is batched but not transactional across batches: a failure mid-way leaves
// earlier batches delivered.
func (r *GormMemberRepository) BroadcastMessages(msgs []models.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return r.db.Session(&gorm.Session{SkipDefaultTransaction: true}).
		CreateInBatches(msgs, 100).Error
}
