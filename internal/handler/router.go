package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/uta-tic/tutoring-api/internal/middleware"
	"github.com/uta-tic/tutoring-api/internal/models"
	"github.com/uta-tic/tutoring-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Careers       *CareerHandler
	Semesters     *SemesterHandler
	Subjects      *SubjectHandler
	Assignments   *AssignmentHandler
	Tutoring      *TutoringHandler
	Notifications *NotificationHandler
	Documents     *DocumentHandler
	Periods       *PeriodHandler
	Reports       *ReportHandler
	Stats         *StatsHandler
	Imports       *ImportHandler
}

// RegisterRoutes mounts every API route group under /api/v1.
func RegisterRoutes(r *gin.Engine, h Handlers, authService *service.AuthService) {
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/select-role", h.Auth.SelectRole)
		auth.POST("/register", h.Users.Register)
		auth.POST("/logout", middleware.JWT(authService), h.Auth.Logout)
		auth.POST("/change-password", middleware.JWT(authService), h.Auth.ChangePassword)
		auth.GET("/session", middleware.JWT(authService), h.Auth.Session)
		auth.GET("/me", middleware.JWT(authService), h.Auth.Me)
	}

	users := v1.Group("/users", middleware.JWT(authService))
	{
		users.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Users.Create)
		users.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Users.List)
		users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), string(models.RoleCoordinator), "SELF"), h.Users.Get)
		users.PUT("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), h.Users.Update)
		users.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Users.Delete)
	}

	careers := v1.Group("/careers", middleware.JWT(authService))
	{
		careers.POST("", middleware.RequireRoles(models.RoleAdmin), h.Careers.Create)
		careers.GET("", h.Careers.List)
		careers.GET("/:id", h.Careers.Get)
		careers.PUT("/:id", middleware.RequireRoles(models.RoleAdmin), h.Careers.Update)
		careers.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Careers.Delete)
	}

	semesters := v1.Group("/semesters", middleware.JWT(authService))
	{
		semesters.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Semesters.Create)
		semesters.GET("", h.Semesters.List)
		semesters.GET("/:id", h.Semesters.Get)
		semesters.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Semesters.Delete)
	}

	subjects := v1.Group("/subjects", middleware.JWT(authService))
	{
		subjects.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Subjects.Create)
		subjects.GET("", h.Subjects.List)
		subjects.GET("/pending", middleware.RequireRoles(models.RoleAdmin), h.Subjects.ListPending)
		subjects.POST("/:id/review", middleware.RequireRoles(models.RoleAdmin), h.Subjects.Review)
		subjects.GET("/:id", h.Subjects.Get)
		subjects.PUT("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Subjects.Update)
		subjects.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Subjects.Delete)
	}

	assignments := v1.Group("/assignments", middleware.JWT(authService))
	{
		assignments.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Assignments.Create)
		assignments.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Assignments.List)
		assignments.GET("/teachers", h.Assignments.AvailableTeachers)
		assignments.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Assignments.Delete)
	}

	tutoring := v1.Group("/tutoring", middleware.JWT(authService))
	{
		tutoring.POST("", middleware.RequireRoles(models.RoleStudent), h.Tutoring.Create)
		tutoring.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Tutoring.List)
		tutoring.GET("/mine", middleware.RequireRoles(models.RoleStudent), h.Tutoring.ListMine)
		tutoring.GET("/assigned", middleware.RequireRoles(models.RoleTeacher), h.Tutoring.ListAssigned)
		tutoring.GET("/:id", h.Tutoring.Get)
		tutoring.POST("/:id/accept", middleware.RequireRoles(models.RoleTeacher), h.Tutoring.Accept)
		tutoring.POST("/:id/reject", middleware.RequireRoles(models.RoleTeacher), h.Tutoring.Reject)
		tutoring.POST("/:id/reschedule", middleware.RequireRoles(models.RoleTeacher), h.Tutoring.Reschedule)
		tutoring.POST("/:id/rate", middleware.RequireRoles(models.RoleStudent), h.Tutoring.Rate)
		tutoring.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Tutoring.Delete)
		tutoring.POST("/:id/messages", middleware.RequireRoles(models.RoleStudent, models.RoleTeacher), h.Tutoring.SendMessage)
		tutoring.GET("/:id/messages", middleware.RequireRoles(models.RoleStudent, models.RoleTeacher), h.Tutoring.ListMessages)
	}

	notifications := v1.Group("/notifications", middleware.JWT(authService))
	{
		notifications.GET("", h.Notifications.List)
		notifications.GET("/unread", h.Notifications.UnreadCount)
		notifications.POST("/read-all", h.Notifications.MarkAllRead)
		notifications.POST("/broadcast", middleware.RequireRoles(models.RoleAdmin), h.Notifications.Broadcast)
		notifications.POST("/:id/read", h.Notifications.MarkRead)
		notifications.DELETE("/:id", h.Notifications.Delete)
	}

	documents := v1.Group("/documents", middleware.JWT(authService))
	{
		documents.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Documents.Upload)
		documents.GET("", h.Documents.List)
		documents.GET("/:id", h.Documents.Get)
		documents.GET("/:id/download", h.Documents.Download)
		documents.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator), h.Documents.Delete)
	}

	periods := v1.Group("/periods", middleware.JWT(authService))
	{
		periods.POST("", middleware.RequireRoles(models.RoleAdmin), h.Periods.Create)
		periods.GET("", h.Periods.List)
		periods.GET("/:id", h.Periods.Get)
		periods.POST("/:id/active", middleware.RequireRoles(models.RoleAdmin), h.Periods.SetActive)
		periods.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), h.Periods.Delete)
	}

	// A nil report handler means the export pipeline is disabled; the
	// routes are simply not mounted.
	if h.Reports != nil {
		reports := v1.Group("/reports")
		{
			// Downloads authenticate through the signed token itself.
			reports.GET("/download", h.Reports.Download)

			authed := reports.Group("", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator))
			authed.POST("", h.Reports.Create)
			authed.GET("", h.Reports.List)
			authed.GET("/:id", h.Reports.Get)
		}
	}

	stats := v1.Group("/stats", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator))
	{
		stats.GET("/users", h.Stats.Users)
		stats.GET("/tutoring", h.Stats.Tutoring)
		stats.GET("/teachers", h.Stats.TeacherRatings)
		stats.GET("/system", h.Stats.System)
	}

	imports := v1.Group("/imports", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	{
		imports.POST("/users", h.Imports.Users)
		imports.POST("/subjects", h.Imports.Subjects)
	}
}
