package api

import (
	"alcyxob/fitness-planner/internal/domain"
	"alcyxob/fitness-planner/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LibraryHandler serves the caller's archived plans.
type LibraryHandler struct {
	library service.PlanLibraryService
	logger  *zap.Logger
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(library service.PlanLibraryService, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{library: library, logger: logger}
}

// --- DTOs ---

// PlanRecordResponse is one entry of the plan library.
type PlanRecordResponse struct {
	PlanID    string            `json:"planId"`
	Source    domain.PlanSource `json:"source"`
	Answers   domain.Answers    `json:"answers"`
	Plan      domain.Plan       `json:"plan"`
	Exported  bool              `json:"exported"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ExportPlanResponse carries a temporary download link.
type ExportPlanResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MapPlanRecordToResponse converts a domain.PlanRecord to its DTO.
func MapPlanRecordToResponse(r *domain.PlanRecord) PlanRecordResponse {
	if r == nil {
		return PlanRecordResponse{}
	}
	return PlanRecordResponse{
		PlanID:    r.PlanID,
		Source:    r.Source,
		Answers:   r.Answers,
		Plan:      r.Plan,
		Exported:  r.ExportKey != "",
		CreatedAt: r.CreatedAt,
	}
}

// MapPlanRecordsToResponse converts a slice of records.
func MapPlanRecordsToResponse(records []domain.PlanRecord) []PlanRecordResponse {
	responses := make([]PlanRecordResponse, len(records))
	for i := range records {
		responses[i] = MapPlanRecordToResponse(&records[i])
	}
	return responses
}

// --- Handler Methods ---

// ListPlans godoc
// @Summary List my plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 20, max 100)"
// @Success 200 {array} PlanRecordResponse
// @Failure 400 {object} gin.H "Invalid limit"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /v1/plans [get]
func (h *LibraryHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			abortWithError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
	}

	records, err := h.library.ListPlans(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list plans", zap.String("user_id", userID), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}
	c.JSON(http.StatusOK, MapPlanRecordsToResponse(records))
}

// GetPlan godoc
// @Summary Get one of my plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanRecordResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /v1/plans/{planId} [get]
func (h *LibraryHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	record, err := h.library.GetPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		h.handleLibraryError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, MapPlanRecordToResponse(record))
}

// ExportPlan godoc
// @Summary Export one of my plans
// @Description Uploads the plan JSON to object storage and returns a presigned download URL.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} ExportPlanResponse
// @Failure 404 {object} gin.H "Not found"
// @Failure 503 {object} gin.H "Export not configured"
// @Router /v1/plans/{planId}/export [post]
func (h *LibraryHandler) ExportPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	url, expiresAt, err := h.library.ExportPlan(c.Request.Context(), userID, c.Param("planId"))
	if err != nil {
		h.handleLibraryError(c, err, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusOK, ExportPlanResponse{URL: url, ExpiresAt: expiresAt})
}

// DeletePlan godoc
// @Summary Delete one of my plans
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /v1/plans/{planId} [delete]
func (h *LibraryHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	if err := h.library.DeletePlan(c.Request.Context(), userID, c.Param("planId")); err != nil {
		h.handleLibraryError(c, err, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) handleLibraryError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, "Plan not found.")
	case errors.Is(err, service.ErrExportUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, "Plan export is not available.")
	default:
		h.logger.Error(message, zap.String("plan_id", c.Param("planId")), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, message)
	}
}
