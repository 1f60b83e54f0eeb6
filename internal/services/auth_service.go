package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles signup, login and token issuance. Tokens only carry
// the member's email; authorization is re-evaluated per call from the record.
type AuthService struct {
	memberRepo repository.MemberRepository
	secret     []byte
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(memberRepo repository.MemberRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		memberRepo: memberRepo,
		secret:     secret,
		tokenTTL:   tokenTTL,
	}
}

// SignupInput represents the required information to register a member.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	Committee   string
	Gender      string
	PhoneNumber string
}

// Signup registers a new member with the default not-accepted role.
func (s *AuthService) Signup(input SignupInput) (*models.Member, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.memberRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	member := &models.Member{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Committee:    input.Committee,
		Gender:       input.Gender,
		PhoneNumber:  input.PhoneNumber,
		Role:         models.RoleNotAccepted,
	}

	if err := s.memberRepo.Create(member); err != nil {
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// Login verifies credentials and returns the member with a bearer token.
func (s *AuthService) Login(email, password string) (*models.Member, string, error) {
	member, err := s.memberRepo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(member.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return member, token, nil
}

func (s *AuthService) issueToken(email string) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
