package controller

import (
	"mindra_backend/internal/service"
	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// ListEvents godoc
// @Summary List analytics events
// @Description Requires a bearer token unless analytics.public is enabled
// @Tags analytics
// @Produce json
// @Success 200 {array} model.AnalyticsEvent
// @Failure 401 {object} util.ErrorResponse
// @Router /api/analytics [get]
func (c *AnalyticsController) ListEvents(ctx *gin.Context) {
	events, err := c.AnalyticsService.ListEvents(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, events)
}
