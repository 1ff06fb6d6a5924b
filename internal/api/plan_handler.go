package api

import (
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// FallbackHeader marks responses produced by the local synthesizer.
	FallbackHeader = "X-Fallback"
	FallbackLocal  = "local"

	maxRequestBodyBytes = 64 << 10
)

// PlanHandler serves plan generation.
type PlanHandler struct {
	planService service.PlanService
	logger      *zap.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{planService: planService, logger: logger}
}

// GeneratePlan godoc
// @Summary Generate a workout plan
// @Description Builds a plan from the wizard answers. Falls back to a local rule-based plan when the model call fails; those responses carry X-Fallback: local.
// @Tags Plans
// @Accept json
// @Produce json
// @Param answers body domain.Answers true "Wizard answers (any subset)"
// @Success 200 {object} domain.Plan
// @Failure 500 {object} gin.H "Body could not be read or is not JSON"
// @Router /generate-plan [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed to read generate-plan body", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	userID, _ := getUserIDFromContext(c) // anonymous callers are allowed

	result, err := h.planService.GeneratePlan(c.Request.Context(), body, userID)
	if err != nil {
		h.logger.Warn("generate-plan request rejected", zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		return
	}

	if result.Fallback() {
		c.Header(FallbackHeader, FallbackLocal)
	}
	c.JSON(http.StatusOK, result.Plan)
}
