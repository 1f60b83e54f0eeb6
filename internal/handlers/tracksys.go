package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

type TrackSysHandler struct {
	trackSysService *services.TrackSysService
}

func NewTrackSysHandler(trackSysService *services.TrackSysService) *TrackSysHandler {
	return &TrackSysHandler{trackSysService: trackSysService}
}

// GetSnapshot returns the full system rollup
func (h *TrackSysHandler) GetSnapshot(c *gin.Context) {
	snapshot, err := h.trackSysService.GetSnapshot()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(snapshot, "Snapshot retrieved successfully"))
}

// GetLeaderboard returns per-track top performers plus the overall ranking
func (h *TrackSysHandler) GetLeaderboard(c *gin.Context) {
	leaderboard, err := h.trackSysService.GetLeaderboard()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(leaderboard, "Leaderboard retrieved successfully"))
}

// GetTrackLeaderboard returns one track's top performers
func (h *TrackSysHandler) GetTrackLeaderboard(c *gin.Context) {
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	board, err := h.trackSysService.GetTrackLeaderboard(trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(board, "Leaderboard retrieved successfully"))
}
