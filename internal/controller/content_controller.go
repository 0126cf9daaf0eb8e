package controller

import (
	"mindra_backend/internal/service"
	"mindra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	LearningService *service.LearningService
}

func NewContentController(learningService *service.LearningService) *ContentController {
	return &ContentController{LearningService: learningService}
}

// ListModules godoc
// @Summary List modules
// @Tags modules
// @Produce json
// @Success 200 {array} model.ModuleSummary
// @Router /api/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	modules, err := c.LearningService.ListModules(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// GetModule godoc
// @Summary Get a module
// @Tags modules
// @Produce json
// @Param id path string true "module id"
// @Success 200 {object} model.ModuleDetail
// @Failure 404 {object} util.ErrorResponse "Module not found"
// @Router /api/modules/{id} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	module, err := c.LearningService.GetModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// GetQuiz godoc
// @Summary Get a module quiz
// @Description Questions are returned without answer keys
// @Tags modules
// @Produce json
// @Param moduleId path string true "module id"
// @Success 200 {array} model.QuizQuestion
// @Failure 404 {object} util.ErrorResponse "Module not found"
// @Router /api/quiz/{moduleId} [get]
func (c *ContentController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.LearningService.GetQuiz(ctx.Request.Context(), ctx.Param("moduleId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}
