package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-planner/internal/domain"
	"alcyxob/workout-planner/internal/metrics"
	"alcyxob/workout-planner/internal/service"
)

// Services bundles what the routes depend on.
type Services struct {
	Auth     service.AuthService
	Accounts service.AccountService
	Workouts service.WorkoutService
	Catalog  service.CatalogService
	Exports  service.ExportService
}

// NewRouter builds the gin engine with the standard middleware chain. metricsHandler may be nil
// to leave /metrics unserved.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, metricsHandler http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger), Metrics(m), gin.Recovery())
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}
	return router
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services, logger *slog.Logger) {
	authHandler := NewAuthHandler(services.Auth, logger)
	accountHandler := NewAccountHandler(services.Accounts, logger)
	planHandler := NewPlanHandler(services.Workouts, services.Exports, logger)
	trackingHandler := NewTrackingHandler(services.Workouts, logger)
	exerciseHandler := NewExerciseHandler(services.Catalog, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(jwtSecret))
	{
		me := protected.Group("/me")
		{
			me.GET("", accountHandler.GetMe)
			me.DELETE("", accountHandler.DeleteMe)
			me.PUT("/profile", accountHandler.UpdateProfile)
			me.PUT("/password", accountHandler.ChangePassword)
			me.POST("/avatar/upload-url", accountHandler.RequestAvatarUpload)
			me.POST("/avatar/confirm", accountHandler.ConfirmAvatar)
		}

		plans := protected.Group("/plans")
		{
			plans.POST("/generate", planHandler.Generate)
			plans.POST("/preview", planHandler.Preview)
			plans.GET("", planHandler.ListPlans)
			plans.GET("/:planId", planHandler.GetPlan)
			plans.DELETE("/:planId", planHandler.DeletePlan)
			plans.POST("/:planId/complete", planHandler.CompletePlan)
			plans.GET("/:planId/export.xlsx", planHandler.DownloadWorkbook)
			plans.POST("/:planId/export", planHandler.UploadWorkbook)
		}

		protected.GET("/calendar", trackingHandler.Calendar)
		protected.GET("/progress", trackingHandler.Progress)
		protected.GET("/exercises", exerciseHandler.ListExercises)

		admin := protected.Group("/admin")
		admin.Use(RoleMiddleware(domain.RoleAdmin))
		{
			admin.POST("/catalog/reseed", exerciseHandler.Reseed)
		}
	}
}
