package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gradevision/internal/authz"
	"gradevision/internal/handlers"
	"gradevision/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	alertHandler *handlers.AlertHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	predictionHandler *handlers.PredictionHandler,
	gamificationHandler *handlers.GamificationHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ---- public
	auth := api.Group("/auth")
	{
		auth.POST("/send-otp", authHandler.SendOtp)
		auth.POST("/verify-otp", authHandler.VerifyOtp)
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// ---- protected
	protected := api.Group("", middleware.AuthMiddleware())

	me := protected.Group("/auth")
	{
		me.GET("/me", authHandler.Me)
		me.PUT("/profile", authHandler.UpdateProfile)
		me.PUT("/password", authHandler.ChangePassword)
		me.POST("/logout", authHandler.Logout)
	}

	students := protected.Group("/students")
	{
		students.GET("", studentHandler.List)
		students.GET("/stats", studentHandler.Stats)
		students.GET("/:id", studentHandler.Get)
		students.GET("/:id/performance", studentHandler.Performance)
		students.POST("", middleware.RequireRoles(authz.RoleAdmin, authz.RoleTeacher), studentHandler.Create)
		students.PUT("/:id", middleware.RequireRoles(authz.RoleAdmin, authz.RoleTeacher), studentHandler.Update)
		students.DELETE("/:id", middleware.RequireRoles(authz.RoleAdmin), studentHandler.Delete)
	}

	alerts := protected.Group("/alerts")
	{
		alerts.GET("", alertHandler.List)
		alerts.GET("/unread-count", alertHandler.UnreadCount)
		alerts.GET("/:id", alertHandler.Get)
		alerts.POST("", alertHandler.Create)
		alerts.PUT("/:id/read", alertHandler.MarkRead)
		alerts.PUT("/read-all", alertHandler.MarkAllRead)
		alerts.DELETE("/:id", alertHandler.Delete)
	}

	analytics := protected.Group("/analytics")
	{
		analytics.GET("/overview", analyticsHandler.Overview)
		analytics.GET("/attendance", analyticsHandler.Attendance)
		analytics.GET("/performance", analyticsHandler.Performance)
		analytics.GET("/engagement", analyticsHandler.Engagement)
		analytics.GET("/trends", analyticsHandler.Trends)
		analytics.GET("/risk-distribution", analyticsHandler.RiskDistribution)
		analytics.GET("/subjects", analyticsHandler.SubjectPerformance)
		analytics.GET("/classes", analyticsHandler.ClassComparison)
		analytics.GET("/student/:id", analyticsHandler.Student)
	}

	predictions := protected.Group("/predictions")
	{
		predictions.GET("", predictionHandler.PredictAll)
		predictions.GET("/student/:id", predictionHandler.Predict)
		predictions.GET("/student/:id/recommendations", predictionHandler.Recommendations)
		predictions.GET("/student/:id/insights", predictionHandler.Insights)
		predictions.GET("/student/:id/features", predictionHandler.FeatureImportance)
	}

	gamification := protected.Group("/gamification")
	{
		gamification.GET("/badges", gamificationHandler.Badges)
		gamification.GET("/leaderboard", gamificationHandler.Leaderboard)
		gamification.GET("/student/:id", gamificationHandler.Profile)
		gamification.GET("/student/:id/eligible", gamificationHandler.Eligible)
		gamification.POST("/claim", gamificationHandler.ClaimReward)
	}

	reports := protected.Group("/reports")
	{
		reports.GET("/summary.pdf", reportHandler.SummaryPDF)
	}

	return r
}
