package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourse creates a course linked to a track
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateCourseRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		TrackID     uint64   `json:"track_id" binding:"required"`
		AdminIDs    []uint64 `json:"admin_ids"`
	}

	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	course, err := h.courseService.CreateCourse(email, services.CreateCourseInput{
		Name:        req.Name,
		Description: req.Description,
		TrackID:     req.TrackID,
		AdminIDs:    req.AdminIDs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToCourseDTO(*course), "Course created successfully"))
}

// ListCourses returns all courses with their track links and tasks
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToCourseDTOs(courses), "Courses retrieved successfully"))
}

// GetCourse returns one course with its relations
func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(courseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToCourseDTO(*course), "Course retrieved successfully"))
}

// AddTrack links a track to a course; no-op when already linked
func (h *CourseHandler) AddTrack(c *gin.Context) {
	h.mutateTrackEdge(c, h.courseService.AddTrackToCourse, "Track linked successfully")
}

// RemoveTrack unlinks a track from a course; no-op when absent
func (h *CourseHandler) RemoveTrack(c *gin.Context) {
	h.mutateTrackEdge(c, h.courseService.RemoveTrackFromCourse, "Track unlinked successfully")
}

func (h *CourseHandler) mutateTrackEdge(c *gin.Context, op func(string, uint64, uint64) (*models.Course, error), message string) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	trackID, ok := parseIDParam(c, "trackId")
	if !ok {
		return
	}

	course, err := op(email, courseID, trackID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToCourseDTO(*course), message))
}

// AddTask appends a task to a course
func (h *CourseHandler) AddTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}

	type AddTaskRequest struct {
		Title           string     `json:"title" binding:"required"`
		Description     string     `json:"description"`
		StartDate       *time.Time `json:"start_date"`
		DueDate         *time.Time `json:"due_date"`
		TaskURL         string     `json:"task_url"`
		HeadPercent     *int       `json:"head_percent"`
		DeadlinePercent *int       `json:"deadline_percent"`
	}

	var req AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.courseService.AddTask(email, courseID, services.TaskInput{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		TaskURL:         req.TaskURL,
		HeadPercent:     req.HeadPercent,
		DeadlinePercent: req.DeadlinePercent,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.ToTaskDTO(*task), "Task created successfully"))
}

// UpdateTask updates a task within a course
func (h *CourseHandler) UpdateTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title           *string    `json:"title"`
		Description     *string    `json:"description"`
		StartDate       *time.Time `json:"start_date"`
		DueDate         *time.Time `json:"due_date"`
		TaskURL         *string    `json:"task_url"`
		HeadPercent     *int       `json:"head_percent"`
		DeadlinePercent *int       `json:"deadline_percent"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.courseService.UpdateTask(email, courseID, taskID, services.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		StartDate:       req.StartDate,
		DueDate:         req.DueDate,
		TaskURL:         req.TaskURL,
		HeadPercent:     req.HeadPercent,
		DeadlinePercent: req.DeadlinePercent,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToTaskDTO(*task), "Task updated successfully"))
}

// RemoveTask deletes a task and its submissions
func (h *CourseHandler) RemoveTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.courseService.RemoveTask(email, courseID, taskID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(nil, "Task deleted successfully"))
}

// SubmitTask appends a submission for the caller
func (h *CourseHandler) SubmitTask(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type SubmitTaskRequest struct {
		Link string `json:"link"`
	}

	var req SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sub, err := h.courseService.SubmitTask(email, courseID, taskID, req.Link)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OK(dto.ToSubmissionDTO(*sub), "Submission created successfully"))
}

// RateSubmission overwrites a submission's rating
func (h *CourseHandler) RateSubmission(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "submissionId")
	if !ok {
		return
	}

	type RateSubmissionRequest struct {
		Rate  *float64 `json:"rate" binding:"required"`
		Notes string   `json:"notes"`
	}

	var req RateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	sub, err := h.courseService.RateSubmission(email, courseID, taskID, submissionID, *req.Rate, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSubmissionDTO(*sub), "Submission rated successfully"))
}

// ListSubmissions lists a task's submissions in insertion order
func (h *CourseHandler) ListSubmissions(c *gin.Context) {
	courseID, ok := parseIDParam(c, "courseId")
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	subs, err := h.courseService.ListTaskSubmissions(courseID, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(dto.ToSubmissionDTOs(subs), "Submissions retrieved successfully"))
}

// CompletedTasks lists rated submissions, optionally filtered by course or member
func (h *CourseHandler) CompletedTasks(c *gin.Context) {
	var courseID, memberID *uint64
	if raw := c.Query("course_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid course_id")
			return
		}
		courseID = &id
	}
	if raw := c.Query("member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid member_id")
			return
		}
		memberID = &id
	}

	completed, err := h.courseService.GetCompletedTasks(courseID, memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(completed, "Completed tasks retrieved successfully"))
}

// MyTasks lists the caller's tasks with derived statuses
func (h *CourseHandler) MyTasks(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	views, err := h.courseService.MyTasks(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK(views, "Tasks retrieved successfully"))
}
