package controller

import (
	"strconv"

	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary Recommended content for a student
// @Tags recommendations
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Content kind" enums(activity,assessment,path) default(activity)
// @Param limit query int false "Result cap"
// @Success 200 {object} util.Response
// @Router /api/recommendations [get]
func (c *RecommendationController) Recommend(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	kind := progress.EntryKind(ctx.DefaultQuery("kind", string(progress.KindActivity)))
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	entries, err := c.RecommendationService.Recommend(ctx.Request.Context(), studentID, kind, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
