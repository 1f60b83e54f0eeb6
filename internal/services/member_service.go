package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/utils"
)

var (
	ErrMessageNotFound       = errors.New("message not found")
	ErrMemberTaskNotFound    = errors.New("member task not found")
	ErrInvalidEvaluation     = errors.New("evaluation must be between 0 and 10")
	ErrSubmissionLinkInvalid = errors.New("a submission link is required")
)

// MemberService serves the member directory and the caller's inbox.
type MemberService struct {
	memberRepo repository.MemberRepository
	authz      *AuthzService
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo repository.MemberRepository, authz *AuthzService) *MemberService {
	return &MemberService{memberRepo: memberRepo, authz: authz}
}

// ListMembers returns a page of the member directory with the total count.
func (s *MemberService) ListMembers(params utils.PaginationParams) ([]models.Member, int64, error) {
	members, total, err := s.memberRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	return members, total, nil
}

// Inbox returns the caller's inbox, newest first.
func (s *MemberService) Inbox(actorEmail string) ([]models.Message, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	msgs, err := s.memberRepo.ListInbox(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}
	return msgs, nil
}

// MarkMessage sets the status of one of the caller's inbox messages.
func (s *MemberService) MarkMessage(actorEmail string, messageID uint64, status models.MessageStatus) (*models.Message, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	msg, err := s.memberRepo.FindMessage(member.ID, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}

	if err := s.memberRepo.UpdateMessageStatus(member.ID, messageID, status); err != nil {
		return nil, fmt.Errorf("failed to update message status: %w", err)
	}
	msg.Status = status
	return msg, nil
}

// AssignTaskInput holds a new member-task assignment.
type AssignTaskInput struct {
	Title       string
	Description string
	StartDate   *time.Time
	Deadline    *time.Time
}

// MemberTaskEvaluation holds the head's scores for one assigned task. The
// deadline score covers how timely the submission was.
type MemberTaskEvaluation struct {
	HeadEvaluation     float64
	DeadlineEvaluation float64
}

// AssignTask assigns a progress task directly to a member and drops an inbox
// notification. Only a head of the member's committee may assign.
func (s *MemberService) AssignTask(actorEmail string, memberID uint64, input AssignTaskInput) (*models.MemberTask, error) {
	if input.Title == "" {
		return nil, ErrTaskTitleRequired
	}

	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	target, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, target.Committee); err != nil {
		return nil, err
	}

	task := &models.MemberTask{
		MemberID:        target.ID,
		Title:           input.Title,
		Description:     input.Description,
		StartDate:       input.StartDate,
		Deadline:        input.Deadline,
		SubmissionLink:  constants.UnsubmittedLink,
		HeadEvaluation:  -1,
		HeadPercent:     constants.HeadEvaluationPercent,
		DeadlinePercent: constants.DeadlineEvaluationPercent,
	}
	if err := s.memberRepo.CreateMemberTask(task); err != nil {
		return nil, fmt.Errorf("failed to create member task: %w", err)
	}

	msg := models.Message{
		MemberID: target.ID,
		Title:    fmt.Sprintf("New Task - %s", input.Title),
		Body:     fmt.Sprintf("You have been assigned a new task: %s.", input.Title),
		Date:     time.Now(),
		Status:   models.MessageStatusUnread,
	}
	if err := s.memberRepo.AppendMessage(&msg); err != nil {
		return nil, fmt.Errorf("failed to notify member: %w", err)
	}

	return task, nil
}

// MyAssignedTasks lists the caller's assigned progress tasks.
func (s *MemberService) MyAssignedTasks(actorEmail string) ([]models.MemberTask, error) {
	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	tasks, err := s.memberRepo.ListMemberTasks(member.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member tasks: %w", err)
	}
	return tasks, nil
}

// SubmitAssignedTask records a real submission link on one of the caller's
// assigned tasks. Other members' tasks are invisible.
func (s *MemberService) SubmitAssignedTask(actorEmail string, taskID uint64, link string) (*models.MemberTask, error) {
	if link == "" || link == constants.UnsubmittedLink {
		return nil, ErrSubmissionLinkInvalid
	}

	member, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	task, err := s.memberRepo.FindMemberTask(member.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberTaskNotFound
		}
		return nil, fmt.Errorf("failed to find member task: %w", err)
	}

	now := time.Now()
	task.SubmissionLink = link
	task.SubmissionDate = &now
	if err := s.memberRepo.UpdateMemberTask(task); err != nil {
		return nil, fmt.Errorf("failed to submit member task: %w", err)
	}
	return task, nil
}

// RateAssignedTask scores an assigned task and refreshes the member's
// aggregate rate. The task rate weighs the head and deadline scores by the
// task's stored percentages; the member rate is the average over their rated
// tasks. Re-rating overwrites in place.
func (s *MemberService) RateAssignedTask(actorEmail string, memberID, taskID uint64, eval MemberTaskEvaluation) (*models.MemberTask, error) {
	if eval.HeadEvaluation < 0 || eval.HeadEvaluation > 10 ||
		eval.DeadlineEvaluation < 0 || eval.DeadlineEvaluation > 10 {
		return nil, ErrInvalidEvaluation
	}

	actor, err := s.authz.Resolve(actorEmail)
	if err != nil {
		return nil, err
	}

	target, err := s.memberRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}

	if err := s.authz.RequireHeadOfCommittee(actor, target.Committee); err != nil {
		return nil, err
	}

	task, err := s.memberRepo.FindMemberTask(target.ID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberTaskNotFound
		}
		return nil, fmt.Errorf("failed to find member task: %w", err)
	}

	rate := eval.HeadEvaluation*float64(task.HeadPercent)/100 +
		eval.DeadlineEvaluation*float64(task.DeadlinePercent)/100
	task.HeadEvaluation = eval.HeadEvaluation
	task.DeadlineEvaluation = eval.DeadlineEvaluation
	task.Rate = &rate
	if err := s.memberRepo.UpdateMemberTask(task); err != nil {
		return nil, fmt.Errorf("failed to rate member task: %w", err)
	}

	if err := s.refreshMemberRate(target.ID); err != nil {
		return nil, err
	}
	return task, nil
}

// refreshMemberRate recomputes a member's rate as the average of their rated
// tasks.
func (s *MemberService) refreshMemberRate(memberID uint64) error {
	tasks, err := s.memberRepo.ListMemberTasks(memberID)
	if err != nil {
		return fmt.Errorf("failed to list member tasks: %w", err)
	}

	sum := 0.0
	rated := 0
	for _, t := range tasks {
		if t.Rate != nil {
			sum += *t.Rate
			rated++
		}
	}
	if rated == 0 {
		return nil
	}

	if err := s.memberRepo.UpdateRate(memberID, sum/float64(rated)); err != nil {
		return fmt.Errorf("failed to update member rate: %w", err)
	}
	return nil
}
