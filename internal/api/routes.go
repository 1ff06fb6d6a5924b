package api

import (
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRoutes registers every endpoint. library may be nil, and the library
// routes are only mounted when both library and jwtSecret are set.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	library service.PlanLibraryService,
	logger *zap.Logger,
) {
	planHandler := NewPlanHandler(planService, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		// POST /api/generate-plan - anonymous or signed-in
		apiGroup.POST("/generate-plan", OptionalAuthMiddleware(jwtSecret), planHandler.GeneratePlan)
	}

	if library == nil || jwtSecret == "" {
		logger.Info("plan library routes disabled (needs database and jwt secret)")
		return
	}

	libraryHandler := NewLibraryHandler(library, logger)
	plans := apiGroup.Group("/v1/plans")
	plans.Use(AuthMiddleware(jwtSecret))
	{
		plans.GET("", libraryHandler.ListPlans)
		plans.GET("/:planId", libraryHandler.GetPlan)
		plans.POST("/:planId/export", libraryHandler.ExportPlan)
		plans.DELETE("/:planId", libraryHandler.DeletePlan)
	}
}
