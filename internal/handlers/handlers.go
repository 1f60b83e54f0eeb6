package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

// parseIDParam parses a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// respondServiceError translates service sentinel errors into envelope
// responses. Anything unrecognized becomes a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrTrackNotFound),
		errors.Is(err, services.ErrApplicantNotFound),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrAdminNotFound),
		errors.Is(err, services.ErrAnnouncementNotFound),
		errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrMemberTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTrackNameRequired),
		errors.Is(err, services.ErrCourseNameRequired),
		errors.Is(err, services.ErrTaskTitleRequired),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrAnnouncementInvalid),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidEvaluation),
		errors.Is(err, services.ErrSubmissionLinkInvalid):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
