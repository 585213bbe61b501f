package app

import (
	"skilltracker_backend/docs"
	"skilltracker_backend/internal/middleware"
	"skilltracker_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.Use(middleware.RequestID(), middleware.AccessLog())

	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(func() string { return a.CurrentConfig().JWT.Secret }))
	{
		a.registerDashboardRoutes(authGroup, c)
		a.registerProfileRoutes(authGroup, c)
		a.registerReportRoutes(authGroup, c)
		a.registerSkillRoutes(authGroup, c)
		a.registerCertificationRoutes(authGroup, c)
	}
}

func (a *App) registerDashboardRoutes(group *gin.RouterGroup, c *controllers) {
	dashboard := group.Group("/dashboard")
	{
		dashboard.GET("/stats", c.dashboard.GetStats)
		dashboard.GET("/streak", c.dashboard.GetStreak)
	}
}

func (a *App) registerProfileRoutes(group *gin.RouterGroup, c *controllers) {
	profile := group.Group("/profile")
	{
		profile.GET("/overview", c.profile.GetOverview)
		profile.GET("/streak", c.profile.GetStreak)
	}
}

func (a *App) registerReportRoutes(group *gin.RouterGroup, c *controllers) {
	reports := group.Group("/reports")
	{
		reports.GET("/stats", c.report.GetStats)
		reports.GET("/hours-distribution", c.report.GetHoursDistribution)
		reports.GET("/skill-distribution", c.report.GetSkillDistribution)
		reports.GET("/certification-history", c.report.GetCertificationHistory)
		reports.GET("/skill-growth", c.report.GetSkillGrowth)
		reports.GET("/daily-activity", c.report.GetDailyActivity)
		reports.GET("/overview", c.report.GetOverview)
		reports.GET("/skills-distribution", c.report.GetSkillsDistribution)
		reports.GET("/skills-progression", c.report.GetSkillsProgression)
		reports.GET("/technical-growth", c.report.GetTechnicalGrowth)
		reports.GET("/soft-growth", c.report.GetSoftGrowth)
		reports.GET("/overall-progress", c.report.GetOverallProgress)
		reports.DELETE("/cache", c.report.ClearCache)
	}
}

func (a *App) registerSkillRoutes(group *gin.RouterGroup, c *controllers) {
	skills := group.Group("/skills")
	{
		skills.GET("", c.skill.List)
		skills.GET("/growth", c.skill.GetGrowth)
		skills.GET("/recommendations", c.skill.GetRecommendations)
		skills.GET("/most-used", c.skill.GetMostUsed)
		skills.GET("/recent-improvements", c.skill.GetRecentImprovements)
	}
}

func (a *App) registerCertificationRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/certifications/stats", c.certification.GetStats)
}
