package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/database"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
)

type serviceTestEnv struct {
	db *gorm.DB

	memberRepo repository.MemberRepository
	trackRepo  repository.TrackRepository
	courseRepo repository.CourseRepository
	annRepo    repository.AnnouncementRepository

	authz               *AuthzService
	authService         *AuthService
	memberService       *MemberService
	trackService        *TrackService
	courseService       *CourseService
	announcementService *AnnouncementService
	trackSysService     *TrackSysService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
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
	require.NoError(t, err)

	database.SetDB(db)

	memberRepo := repository.NewMemberRepository(db)
	trackRepo := repository.NewTrackRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	annRepo := repository.NewAnnouncementRepository(db)

	logger := zerolog.Nop()
	authz := NewAuthzService(memberRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return serviceTestEnv{
		db:                  db,
		memberRepo:          memberRepo,
		trackRepo:           trackRepo,
		courseRepo:          courseRepo,
		annRepo:             annRepo,
		authz:               authz,
		authService:         NewAuthService(memberRepo, []byte("test-secret"), time.Hour),
		memberService:       NewMemberService(memberRepo, authz),
		trackService:        NewTrackService(trackRepo, memberRepo, authz, logger),
		courseService:       NewCourseService(courseRepo, trackRepo, memberRepo, authz),
		announcementService: NewAnnouncementService(annRepo, memberRepo, trackRepo, authz, logger),
		trackSysService:     NewTrackSysService(trackRepo, courseRepo, memberRepo),
	}
}

func createTestMember(t *testing.T, db *gorm.DB, name, committee string, role models.MemberRole) *models.Member {
	t.Helper()

	member := &models.Member{
		Name:         name,
		Email:        name + "@robotics.test",
		PasswordHash: "hashed",
		Committee:    committee,
		Role:         role,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func createTestTrack(t *testing.T, env serviceTestEnv, headEmail, name string) *models.Track {
	t.Helper()

	track, err := env.trackService.CreateTrack(headEmail, CreateTrackInput{
		Name:        name,
		Description: name + " description",
	})
	require.NoError(t, err)
	return track
}

func countInboxMessages(t *testing.T, db *gorm.DB, memberID uint64) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.Message{}).Where("member_id = ?", memberID).Count(&count).Error)
	return count
}
