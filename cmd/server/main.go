package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/config"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/database"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/handlers"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/repository"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg.Logging.Level)

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logger.Fatal().Err(err).Msg("failed to add indexes")
	}

	r := setupRouter(cfg, logger)

	logger.Info().Str("address", cfg.Server.Address).Msg("server starting")
	if err := r.Run(cfg.Server.Address); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func setupRouter(cfg *config.Config, logger zerolog.Logger) *gin.Engine {
	db := database.GetDB()
	secret := []byte(cfg.Auth.JWTSecret)

	memberRepo := repository.NewMemberRepository(db)
	trackRepo := repository.NewTrackRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	annRepo := repository.NewAnnouncementRepository(db)

	authz := services.NewAuthzService(memberRepo)
	authService := services.NewAuthService(memberRepo, secret, cfg.Auth.TokenTTL)
	memberService := services.NewMemberService(memberRepo, authz)
	trackService := services.NewTrackService(trackRepo, memberRepo, authz, logger)
	courseService := services.NewCourseService(courseRepo, trackRepo, memberRepo, authz)
	announcementService := services.NewAnnouncementService(annRepo, memberRepo, trackRepo, authz, logger)
	trackSysService := services.NewTrackSysService(trackRepo, courseRepo, memberRepo)

	authHandler := handlers.NewAuthHandler(authService, authz)
	memberHandler := handlers.NewMemberHandler(memberService)
	trackHandler := handlers.NewTrackHandler(trackService)
	courseHandler := handlers.NewCourseHandler(courseService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	trackSysHandler := handlers.NewTrackSysHandler(trackSysService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Robotics server is running",
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(secret), authHandler.Me)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(secret))
		{
			protected.GET("/members", memberHandler.ListMembers)
			protected.GET("/inbox", memberHandler.Inbox)
			protected.PATCH("/inbox/:messageId", memberHandler.MarkMessage)

			protected.POST("/members/:memberId/tasks", memberHandler.AssignTask)
			protected.PUT("/members/:memberId/tasks/:taskId/rate", memberHandler.RateAssignedTask)
			protected.GET("/my-assigned-tasks", memberHandler.MyAssignedTasks)
			protected.POST("/my-assigned-tasks/:taskId/submit", memberHandler.SubmitAssignedTask)

			tracks := protected.Group("/tracks")
			{
				tracks.POST("", trackHandler.CreateTrack)
				tracks.GET("", trackHandler.ListTracks)
				tracks.GET("/:trackId", trackHandler.GetTrack)
				tracks.PATCH("/:trackId", trackHandler.UpdateTrack)
				tracks.DELETE("/:trackId", trackHandler.DeleteTrack)

				tracks.POST("/:trackId/apply", trackHandler.Apply)
				tracks.GET("/:trackId/applicants", trackHandler.ListTrackApplicants)
				tracks.PUT("/:trackId/applicants/:memberId/accept", trackHandler.AcceptApplicant)
				tracks.PUT("/:trackId/applicants/:memberId/reject", trackHandler.RejectApplicant)

				tracks.POST("/:trackId/members/:memberId", trackHandler.AddMember)
				tracks.DELETE("/:trackId/members/:memberId", trackHandler.RemoveMember)
				tracks.POST("/:trackId/supervisors/:memberId", trackHandler.AddSupervisor)
				tracks.DELETE("/:trackId/supervisors/:memberId", trackHandler.RemoveSupervisor)
				tracks.POST("/:trackId/hrs/:memberId", trackHandler.AddHR)
				tracks.DELETE("/:trackId/hrs/:memberId", trackHandler.RemoveHR)
			}

			protected.GET("/applicants", trackHandler.ListApplicants)
			protected.GET("/my-applications", trackHandler.MyApplications)

			courses := protected.Group("/courses")
			{
				courses.POST("", courseHandler.CreateCourse)
				courses.GET("", courseHandler.ListCourses)
				courses.GET("/:courseId", courseHandler.GetCourse)

				courses.POST("/:courseId/tracks/:trackId", courseHandler.AddTrack)
				courses.DELETE("/:courseId/tracks/:trackId", courseHandler.RemoveTrack)

				courses.POST("/:courseId/tasks", courseHandler.AddTask)
				courses.PATCH("/:courseId/tasks/:taskId", courseHandler.UpdateTask)
				courses.DELETE("/:courseId/tasks/:taskId", courseHandler.RemoveTask)

				courses.POST("/:courseId/tasks/:taskId/submit", courseHandler.SubmitTask)
				courses.GET("/:courseId/tasks/:taskId/submissions", courseHandler.ListSubmissions)
				courses.PUT("/:courseId/tasks/:taskId/submissions/:submissionId/rate", courseHandler.RateSubmission)
			}

			protected.GET("/completed-tasks", courseHandler.CompletedTasks)
			protected.GET("/my-tasks", courseHandler.MyTasks)

			announcements := protected.Group("/announcements")
			{
				announcements.POST("", announcementHandler.CreateAnnouncement)
				announcements.GET("", announcementHandler.ListAnnouncements)
				announcements.PUT("/:id", announcementHandler.UpdateAnnouncement)
				announcements.DELETE("/:id", announcementHandler.DeleteAnnouncement)
				announcements.GET("/track/:trackId", announcementHandler.ListTrackAnnouncements)
			}

			tracksys := protected.Group("/tracksys")
			{
				tracksys.GET("", trackSysHandler.GetSnapshot)
				tracksys.GET("/awa2l", trackSysHandler.GetLeaderboard)
				tracksys.GET("/awa2l/:trackId", trackSysHandler.GetTrackLeaderboard)
			}
		}
	}

	return r
}
