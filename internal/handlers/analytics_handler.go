package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deal_management/internal/services"
	"github.com/deal_management/pkg/utils"
)

// AnalyticsHandler wraps the analytics HTTP handling logic.
type AnalyticsHandler struct {
	service services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance.
func NewAnalyticsHandler(service services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetAnalytics godoc
// @Summary Aggregate analytics over the visible deal set
// @Description Counts deals per status, state, owner and creation month. Admins aggregate over every deal, everyone else over their own.
// @Tags Analytics
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.AnalyticsReport}
// @Failure 401 {object} utils.APIErrorResponse "Not authenticated"
// @Failure 500 {object} utils.APIErrorResponse "Internal error"
// @Router /analytics [get]
// @Security BearerAuth
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	report, err := h.service.ComputeAnalytics(actorFromContext(c))
	if err != nil {
		respondServiceError(c, err, "Failed to compute analytics")
		return
	}
	utils.RespondSuccess(c, http.StatusOK, report, "")
}
