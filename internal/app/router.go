package app

import (
	"learning_pulse_backend/docs"
	"learning_pulse_backend/internal/config"
	"learning_pulse_backend/internal/middleware"
	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)

	// catalog browsing
	rg.GET("/courses", c.content.ListCourses)
	rg.GET("/courses/:id", c.content.GetCourse)
	rg.GET("/activities", c.catalog.ListActivities)
	rg.GET("/activities/:id", c.catalog.GetActivity)
	rg.GET("/assessments", c.catalog.ListAssessments)
	rg.GET("/assessments/:id", c.catalog.GetAssessment)
	rg.GET("/learning-paths", c.catalog.ListLearningPaths)
	rg.GET("/learning-paths/:id", c.catalog.GetLearningPath)

	// own progress
	rg.GET("/progress", c.progress.GetProgress)
	rg.POST("/progress/activities/:activityId/complete", c.progress.CompleteActivity)
	rg.POST("/progress/assessments/:assessmentId/submit", c.progress.SubmitAssessment)
	rg.POST("/progress/paths/:pathId/enroll", c.progress.EnrollInPath)
	rg.POST("/progress/paths/:pathId/nodes/:nodeId/complete", c.progress.CompletePathNode)
	rg.POST("/progress/goals", c.progress.CreateGoal)
	rg.PUT("/progress/goals/:goalId", c.progress.UpdateGoal)
	rg.DELETE("/progress/goals/:goalId", c.progress.DeleteGoal)

	rg.GET("/recommendations", c.recommendation.Recommend)

	// analytics and consent, own data
	rg.POST("/analytics/events", c.analytics.LogEvents)
	rg.GET("/analytics/summary", c.analytics.StudentSummary)
	rg.GET("/analytics/engagement", c.analytics.StudentEngagement)
	rg.GET("/analytics/bloom", c.analytics.BloomMastery)
	rg.GET("/consent", c.consent.Get)
	rg.PUT("/consent", c.consent.Update)
	rg.GET("/consent/export", c.consent.Export)
	rg.POST("/consent/erase", c.consent.Erase)

	rg.GET("/dashboard/me", c.dashboard.StudentOverview)
	rg.GET("/dashboard/leaderboard", c.dashboard.Leaderboard)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		// content authoring
		teacher.POST("/courses", c.content.CreateCourse)
		teacher.PUT("/courses/:id", c.content.UpdateCourse)
		teacher.DELETE("/courses/:id", c.content.DeleteCourse)
		teacher.POST("/courses/:id/lessons", c.content.CreateLesson)
		teacher.POST("/courses/:id/lessons/video", c.content.UploadLessonVideo)
		teacher.PUT("/lessons/:lessonId", c.content.UpdateLesson)
		teacher.DELETE("/lessons/:lessonId", c.content.DeleteLesson)

		teacher.POST("/activities", c.catalog.CreateActivity)
		teacher.PUT("/activities/:id", c.catalog.UpdateActivity)
		teacher.DELETE("/activities/:id", c.catalog.DeleteActivity)
		teacher.POST("/assessments", c.catalog.CreateAssessment)
		teacher.PUT("/assessments/:id", c.catalog.UpdateAssessment)
		teacher.DELETE("/assessments/:id", c.catalog.DeleteAssessment)
		teacher.POST("/learning-paths", c.catalog.CreateLearningPath)
		teacher.PUT("/learning-paths/:id", c.catalog.UpdateLearningPath)
		teacher.DELETE("/learning-paths/:id", c.catalog.DeleteLearningPath)

		// per-student views
		teacher.GET("/students/:studentId/progress", c.progress.GetProgress)
		teacher.POST("/students/:studentId/insights/recompute", c.progress.RecomputeInsights)
		teacher.GET("/students/:studentId/analytics/summary", c.analytics.StudentSummary)
		teacher.GET("/students/:studentId/analytics/engagement", c.analytics.StudentEngagement)
		teacher.GET("/students/:studentId/analytics/bloom", c.analytics.BloomMastery)
		teacher.GET("/analytics/topics/:topicId", c.analytics.TopicSummary)

		teacher.GET("/dashboard/overview", c.dashboard.Overview)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.DELETE("/users/:id", c.user.DeleteUser)
	}
}
