package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/utils"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// ListMembers returns a page of the member directory
func (h *MemberHandler) ListMembers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	members, total, err := h.memberService.ListMembers(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.MemberDTO, len(members))
	for i, m := range members {
		out[i] = dto.ToMemberDTO(m)
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"members": out,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}, "Members retrieved successfully"))
}

// Inbox returns the caller's inbox, newest first
func (h *MemberHandler) Inbox(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	msgs, err := h.memberService.Inbox(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMessageDTOs(msgs), "Inbox retrieved successfully"))
}

// MarkMessage sets the status of one of the caller's inbox messages
func (h *MemberHandler) MarkMessage(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	messageID, ok := parseIDParam(c, "messageId")
	if !ok {
		return
	}

	type MarkMessageRequest struct {
		Status models.MessageStatus `json:"status" binding:"required,oneof=unread read archived"`
	}

	var req MarkMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	msg, err := h.memberService.MarkMessage(email, messageID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	msgs := dto.ToMessageDTOs([]models.Message{*msg})
	c.JSON(http.StatusOK, dto.OK(msgs[0], "Message updated successfully"))
}

// AssignTask assigns a progress task to a member
func (h *MemberHandler) AssignTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	type AssignTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description string     `json:"description"`
		StartDate   *time.Time `json:"start_date"`
		Deadline    *time.Time `json:"deadline"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.memberService.AssignTask(email, memberID, services.AssignTaskInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToMemberTaskDTO(*task), "Task assigned successfully"))
}

// MyAssignedTasks lists the caller's assigned progress tasks
func (h *MemberHandler) MyAssignedTasks(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.memberService.MyAssignedTasks(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMemberTaskDTOs(tasks), "Tasks retrieved successfully"))
}

// SubmitAssignedTask records a submission link on one of the caller's tasks
func (h *MemberHandler) SubmitAssignedTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type SubmitAssignedTaskRequest struct {
		Link string `json:"link" binding:"required"`
	}

	var req SubmitAssignedTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.memberService.SubmitAssignedTask(email, taskID, req.Link)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMemberTaskDTO(*task), "Task submitted successfully"))
}

// RateAssignedTask scores an assigned task and refreshes the member's rate
func (h *MemberHandler) RateAssignedTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type RateAssignedTaskRequest struct {
		HeadEvaluation     float64 `json:"head_evaluation" binding:"min=0,max=10"`
		DeadlineEvaluation float64 `json:"deadline_evaluation" binding:"min=0,max=10"`
	}

	var req RateAssignedTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.memberService.RateAssignedTask(email, memberID, taskID, services.MemberTaskEvaluation{
		HeadEvaluation:     req.HeadEvaluation,
		DeadlineEvaluation: req.DeadlineEvaluation,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMemberTaskDTO(*task), "Task rated successfully"))
}
