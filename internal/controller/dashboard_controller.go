package controller

import (
	"mindra_backend/internal/service"
	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary Module dashboard
// @Description Lists modules with the caller's status. Anonymous callers see every module as not started.
// @Tags dashboard
// @Produce json
// @Success 200 {array} model.DashboardModule
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID := ""
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	dashboard, err := c.DashboardService.GetDashboard(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}
