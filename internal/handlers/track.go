package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

type TrackHandler struct {
	trackService *services.TrackService
}

func NewTrackHandler(trackService *services.TrackService) *TrackHandler {
	return &TrackHandler{trackService: trackService}
}

// CreateTrack creates a track owned by the caller's committee
func (h *TrackHandler) CreateTrack(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTrackRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	track, err := h.trackService.CreateTrack(email, services.CreateTrackInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToTrackDTO(*track), "Track created successfully"))
}

// ListTracks returns all tracks with their membership sets
func (h *TrackHandler) ListTracks(c *gin.Context) {
	tracks, err := h.trackService.ListTracks()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTrackDTOs(tracks), "Tracks retrieved successfully"))
}

// GetTrack returns one track with its relations
func (h *TrackHandler) GetTrack(c *gin.Context) {
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	track, err := h.trackService.GetTrack(trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTrackDTO(*track), "Track retrieved successfully"))
}

// UpdateTrack updates a track's name or description
func (h *TrackHandler) UpdateTrack(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	type UpdateTrackRequest struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	var req UpdateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	track, err := h.trackService.UpdateTrack(email, trackID, services.UpdateTrackInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTrackDTO(*track), "Track updated successfully"))
}

// DeleteTrack removes a track and its memberships, applicants and course links
func (h *TrackHandler) DeleteTrack(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	if err := h.trackService.DeleteTrack(email, trackID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, "Track deleted successfully"))
}

// Apply appends a pending application for the caller
func (h *TrackHandler) Apply(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	applicant, err := h.trackService.Apply(email, trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(gin.H{
		"track_id":  applicant.TrackID,
		"member_id": applicant.MemberID,
		"status":    applicant.Status,
	}, "Application submitted successfully"))
}

// AcceptApplicant marks an application accepted and notifies the member
func (h *TrackHandler) AcceptApplicant(c *gin.Context) {
	h.decide(c, models.ApplicantAccepted)
}

// RejectApplicant marks an application rejected and notifies the member
func (h *TrackHandler) RejectApplicant(c *gin.Context) {
	h.decide(c, models.ApplicantRejected)
}

func (h *TrackHandler) decide(c *gin.Context, decision models.ApplicantStatus) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	applicant, err := h.trackService.Decide(email, trackID, memberID, decision)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(gin.H{
		"track_id":  applicant.TrackID,
		"member_id": applicant.MemberID,
		"status":    applicant.Status,
	}, "Applicant status updated successfully"))
}

// ListApplicants returns every track of the caller's committee with applicants
func (h *TrackHandler) ListApplicants(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tracks, err := h.trackService.ListApplicants(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTrackDTOs(tracks), "Applicants retrieved successfully"))
}

// ListTrackApplicants returns one track's applicant pipeline
func (h *TrackHandler) ListTrackApplicants(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	track, err := h.trackService.ListTrackApplicants(email, trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTrackDTO(*track).Applicants, "Applicants retrieved successfully"))
}

// MyApplications returns the caller's applications across all tracks
func (h *TrackHandler) MyApplications(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	apps, err := h.trackService.MyApplications(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToApplicationDTOs(apps), "Applications retrieved successfully"))
}

// AddMember adds a member to the track's member set
func (h *TrackHandler) AddMember(c *gin.Context) {
	h.mutateSet(c, h.trackService.AddMember, "Member added successfully")
}

// RemoveMember removes a member from the track's member set
func (h *TrackHandler) RemoveMember(c *gin.Context) {
	h.mutateSet(c, h.trackService.RemoveMember, "Member removed successfully")
}

// AddSupervisor adds a member to the track's supervisor set
func (h *TrackHandler) AddSupervisor(c *gin.Context) {
	h.mutateSet(c, h.trackService.AddSupervisor, "Supervisor added successfully")
}

// RemoveSupervisor removes a member from the track's supervisor set
func (h *TrackHandler) RemoveSupervisor(c *gin.Context) {
	h.mutateSet(c, h.trackService.RemoveSupervisor, "Supervisor removed successfully")
}

// AddHR adds a member to the track's HR set
func (h *TrackHandler) AddHR(c *gin.Context) {
	h.mutateSet(c, h.trackService.AddHR, "HR added successfully")
}

// RemoveHR removes a member from the track's HR set
func (h *TrackHandler) RemoveHR(c *gin.Context) {
	h.mutateSet(c, h.trackService.RemoveHR, "HR removed successfully")
}

func (h *TrackHandler) mutateSet(c *gin.Context, op func(string, uint64, uint64) error, message string) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}
	memberID, ok := parseIDParam(c, "memberId")
	if !ok {
		return
	}

	if err := op(email, trackID, memberID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, message))
}
