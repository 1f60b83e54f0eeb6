package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/dto"
	apierrors "github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/errors"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	authz       *services.AuthzService
}

func NewAuthHandler(authService *services.AuthService, authz *services.AuthzService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authz:       authz,
	}
}

// Signup registers a new member with the default not-accepted role
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Committee   string `json:"committee" binding:"required"`
		Gender      string `json:"gender"`
		PhoneNumber string `json:"phone_number"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.authService.Signup(services.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Committee:   req.Committee,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(dto.ToMemberDTO(*member), "Member registered successfully"))
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(gin.H{
		"token":  token,
		"member": dto.ToMemberDTO(*member),
	}, "Logged in successfully"))
}

// Me returns the current member's record
func (h *AuthHandler) Me(c *gin.Context) {
	email, ok := middleware.GetEmail(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	member, err := h.authz.Resolve(email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(dto.ToMemberDTO(*member), "Member retrieved successfully"))
}
