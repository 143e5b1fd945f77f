package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/mentoraid/internal/app/controllers"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/risk"
	"github.com/yigit/mentoraid/internal/middleware"
	"github.com/yigit/mentoraid/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	studentController *controllers.StudentController,
	interventionController *controllers.InterventionController,
	insightController *controllers.InsightController,
	riskController *controllers.RiskController,
	uploadController *controllers.UploadController,
	notificationController *controllers.NotificationController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/login/:provider", authController.LoginWithProvider)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Roster-changing operations
	staff := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleMentor)

	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.Me)

		authenticated.GET("/dashboard", dashboardController.GetDashboard)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("/regenerate", staff, studentController.RegenerateRoster)
			students.GET("/export", studentController.ExportStudents)
			students.GET("/:id", studentController.GetStudent)
			students.GET("/:id/interventions", interventionController.ListInterventions)
			students.POST("/:id/interventions", interventionController.LogIntervention)
			students.POST("/:id/insights/:kind", insightController.GenerateInsight)
			students.POST("/:id/email", insightController.SendEmail)
		}

		riskGroup := authenticated.Group("/risk")
		{
			riskGroup.POST("/score",
				middleware.ValidateRequest(func() *dto.RiskScoreRequest { return &dto.RiskScoreRequest{} }),
				riskController.Score,
			)
			riskGroup.POST("/predict",
				middleware.ValidateRequest(func() *risk.PredictorInput { return &risk.PredictorInput{} }),
				riskController.Predict,
			)
			riskGroup.GET("/predict/defaults", riskController.PredictorDefaults)
		}

		authenticated.POST("/uploads", staff, uploadController.Upload)

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.ListNotifications)
			notifications.GET("/ws", wsHandler.HandleConnection)
		}
	}
}
