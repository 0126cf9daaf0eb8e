package controller

import (
	"mindra_backend/internal/model"
	"mindra_backend/internal/service"
	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
}

func NewLearningController(learningService *service.LearningService) *LearningController {
	return &LearningController{LearningService: learningService}
}

// SubmitRequest is a quiz attempt.
// swagger:model SubmitRequest
type SubmitRequest struct {
	ModuleID string         `json:"moduleId" binding:"required"`
	Answers  []model.Answer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit a quiz attempt
// @Description Grades the answers and records progress and an analytics event
// @Tags learning
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitRequest true "attempt"
// @Success 200 {object} model.GradeResult
// @Failure 400 {object} util.ErrorResponse
// @Failure 401 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse "Module not found"
// @Failure 422 {object} util.ErrorResponse "Module has no quiz questions"
// @Router /api/submit [post]
func (c *LearningController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Missing Authorization header")
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "moduleId and answers required")
		return
	}

	result, err := c.LearningService.SubmitAttempt(ctx.Request.Context(), claims.UserID, req.ModuleID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary My progress
// @Tags learning
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserProgress
// @Failure 401 {object} util.ErrorResponse
// @Router /api/progress [get]
func (c *LearningController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx, "Missing Authorization header")
		return
	}

	progress, err := c.LearningService.GetProgress(ctx.Request.Context(), claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
