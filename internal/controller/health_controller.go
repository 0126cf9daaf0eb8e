package controller

import (
	"net/http"

	"mindra_backend/internal/repository"
	"mindra_backend/internal/util"
	"mindra_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	Store repository.SnapshotStore
}

func NewHealthController(store repository.SnapshotStore) *HealthController {
	return &HealthController{Store: store}
}

// HealthCheck godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if _, err := c.Store.Read(ctx.Request.Context()); err != nil {
		logger.Log.Warn("Store health check failed", zap.Error(err))
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"components": gin.H{
				"store": "down",
			},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"store": "up",
		},
	})
}
