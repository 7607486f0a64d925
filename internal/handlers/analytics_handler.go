package handlers

import (
	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

// GetAnalytics returns sales totals and the trailing daily sales series
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	analytics, err := h.analyticsService.GetAnalytics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Analytics retrieved", analytics)
}
