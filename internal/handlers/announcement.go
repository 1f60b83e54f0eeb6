package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncement persists an announcement and fans it out to every inbox
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateAnnouncementRequest struct {
		Title     string    `json:"title" binding:"required"`
		Content   string    `json:"content" binding:"required"`
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
		TrackID   *uint64   `json:"track_id"`
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.announcementService.Create(email, services.AnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		ExpiresAt: req.ExpiresAt,
		TrackID:   req.TrackID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToAnnouncementDTO(*announcement), "Announcement created successfully"))
}

// UpdateAnnouncement mutates an announcement and broadcasts it again
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateAnnouncementRequest struct {
		Title     string    `json:"title" binding:"required"`
		Content   string    `json:"content" binding:"required"`
		ExpiresAt time.Time `json:"expires_at" binding:"required"`
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.announcementService.Update(email, id, services.AnnouncementInput{
		Title:     req.Title,
		Content:   req.Content,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToAnnouncementDTO(*announcement), "Announcement updated successfully"))
}

// DeleteAnnouncement removes the announcement record; delivered messages stay
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(email, id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, "Announcement deleted successfully"))
}

// ListAnnouncements sweeps expired announcements, then lists the committee's
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	announcements, err := h.announcementService.ListForCommittee(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToAnnouncementDTOs(announcements), "Announcements retrieved successfully"))
}

// ListTrackAnnouncements sweeps and lists one track's announcements
func (h *AnnouncementHandler) ListTrackAnnouncements(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	announcements, err := h.announcementService.ListForTrack(email, trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToAnnouncementDTOs(announcements), "Announcements retrieved successfully"))
}
