package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/constants"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/database"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

// TrackHandlerTestSuite defines the test suite for TrackHandler
type TrackHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TrackHandler
}

// SetupTest runs before each test
func (suite *TrackHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Member{},
		&models.Message{},
		&models.MemberTask{},
		&models.Track{},
		&models.TrackMember{},
		&models.TrackApplicant{},
		&models.Course{},
		&models.CourseTrack{},
		&models.CourseAdmin{},
		&models.Task{},
		&models.Submission{},
		&models.Announcement{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	memberRepo := repository.NewMemberRepository(suite.db)
	trackRepo := repository.NewTrackRepository(suite.db)
	authz := services.NewAuthzService(memberRepo)
	trackService := services.NewTrackService(trackRepo, memberRepo, authz, zerolog.Nop())
	suite.handler = NewTrackHandler(trackService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TrackHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TrackHandlerTestSuite) createTestMember(name, committee string, role models.MemberRole) *models.Member {
	member := &models.Member{
		Name:         name,
		Email:        name + "@robotics.test",
		PasswordHash: "hashed",
		Committee:    committee,
		Role:         role,
	}
	suite.Require().NoError(suite.db.Create(member).Error)
	return member
}

func (suite *TrackHandlerTestSuite) createTestTrack(name, committee string) *models.Track {
	track := &models.Track{
		Name:        name,
		Description: name + " description",
		Committee:   committee,
	}
	suite.Require().NoError(suite.db.Create(track).Error)
	return track
}

// createAuthContext builds a gin context carrying the caller's email and
// optional path parameters
func (suite *TrackHandlerTestSuite) createAuthContext(method, url string, body []byte, email string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	c.Set(constants.ContextKeyEmail, email)

	return c, w
}

func (suite *TrackHandlerTestSuite) TestApply_Success() {
	suite.createTestMember("alice", "software", models.RoleHead)
	member := suite.createTestMember("bob", "software", models.RoleMember)
	suite.createTestTrack("Backend", "software")

	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/1/apply", nil, member.Email, gin.Params{
		{Key: "trackId", Value: "1"},
	})

	suite.handler.Apply(c)

	suite.Equal(http.StatusCreated, w.Code)

	var count int64
	suite.db.Model(&models.TrackApplicant{}).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *TrackHandlerTestSuite) TestApply_DuplicateConflicts() {
	member := suite.createTestMember("bob", "software", models.RoleMember)
	suite.createTestTrack("Backend", "software")

	params := gin.Params{{Key: "trackId", Value: "1"}}

	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/1/apply", nil, member.Email, params)
	suite.handler.Apply(c)
	suite.Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/api/tracks/1/apply", nil, member.Email, params)
	suite.handler.Apply(c)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *TrackHandlerTestSuite) TestApply_TrackNotFound() {
	member := suite.createTestMember("bob", "software", models.RoleMember)

	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/99/apply", nil, member.Email, gin.Params{
		{Key: "trackId", Value: "99"},
	})
	suite.handler.Apply(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TrackHandlerTestSuite) TestAcceptApplicant_Success() {
	head := suite.createTestMember("alice", "software", models.RoleHead)
	member := suite.createTestMember("bob", "software", models.RoleMember)
	suite.createTestTrack("Backend", "software")

	applyParams := gin.Params{{Key: "trackId", Value: "1"}}
	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/1/apply", nil, member.Email, applyParams)
	suite.handler.Apply(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	decideParams := gin.Params{
		{Key: "trackId", Value: "1"},
		{Key: "memberId", Value: "2"},
	}
	c, w = suite.createAuthContext(http.MethodPut, "/api/tracks/1/applicants/2/accept", nil, head.Email, decideParams)
	suite.handler.AcceptApplicant(c)

	suite.Equal(http.StatusOK, w.Code)

	var applicant models.TrackApplicant
	suite.Require().NoError(suite.db.Where("track_id = ? AND member_id = ?", 1, member.ID).First(&applicant).Error)
	suite.Equal(models.ApplicantAccepted, applicant.Status)

	var inbox int64
	suite.db.Model(&models.Message{}).Where("member_id = ?", member.ID).Count(&inbox)
	suite.EqualValues(1, inbox)
}

func (suite *TrackHandlerTestSuite) TestAcceptApplicant_CrossCommitteeForbidden() {
	suite.createTestMember("alice", "software", models.RoleHead)
	otherHead := suite.createTestMember("carol", "mechanics", models.RoleHead)
	member := suite.createTestMember("bob", "software", models.RoleMember)
	suite.createTestTrack("Backend", "software")

	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/1/apply", nil, member.Email, gin.Params{
		{Key: "trackId", Value: "1"},
	})
	suite.handler.Apply(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext(http.MethodPut, "/api/tracks/1/applicants/3/accept", nil, otherHead.Email, gin.Params{
		{Key: "trackId", Value: "1"},
		{Key: "memberId", Value: "3"},
	})
	suite.handler.AcceptApplicant(c)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *TrackHandlerTestSuite) TestGetTrack_InvalidParam() {
	member := suite.createTestMember("bob", "software", models.RoleMember)

	c, w := suite.createAuthContext(http.MethodGet, "/api/tracks/abc", nil, member.Email, gin.Params{
		{Key: "trackId", Value: "abc"},
	})
	suite.handler.GetTrack(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TrackHandlerTestSuite) TestAddMember_SetSemantics() {
	head := suite.createTestMember("alice", "software", models.RoleHead)
	member := suite.createTestMember("bob", "software", models.RoleMember)
	suite.createTestTrack("Backend", "software")

	params := gin.Params{
		{Key: "trackId", Value: "1"},
		{Key: "memberId", Value: "2"},
	}

	c, w := suite.createAuthContext(http.MethodPost, "/api/tracks/1/members/2", nil, head.Email, params)
	suite.handler.AddMember(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = suite.createAuthContext(http.MethodPost, "/api/tracks/1/members/2", nil, head.Email, params)
	suite.handler.AddMember(c)
	suite.Equal(http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.TrackMember{}).Where("member_id = ?", member.ID).Count(&count)
	suite.EqualValues(1, count)
}

// TestTrackHandlerTestSuite runs the test suite
func TestTrackHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackHandlerTestSuite))
}
