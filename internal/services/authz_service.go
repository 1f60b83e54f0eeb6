package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrForbidden      = errors.New("forbidden")
)

// AuthzService resolves caller identities and evaluates role/committee
// policy predicates. It has no side effects.
type AuthzService struct {
	memberRepo repository.MemberRepository
}

// NewAuthzService creates a new AuthzService.
func NewAuthzService(memberRepo repository.MemberRepository) *AuthzService {
	return &AuthzService{memberRepo: memberRepo}
}

// Resolve maps a caller email to its member record.
func (s *AuthzService) Resolve(email string) (*models.Member, error) {
	member, err := s.memberRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}
	return member, nil
}

// RequireRole checks that the member holds one of the allowed roles.
func (s *AuthzService) RequireRole(member *models.Member, roles ...models.MemberRole) error {
	for _, role := range roles {
		if member.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireHeadOfCommittee is the composite predicate gating committee-scoped
// mutations: the member must be a head AND belong to the target committee.
func (s *AuthzService) RequireHeadOfCommittee(member *models.Member, committee string) error {
	if member.Role != models.RoleHead || member.Committee != committee {
		return ErrForbidden
	}
	return nil
}
