package controller

import (
	"strconv"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	CatalogService *service.CatalogService
}

func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{CatalogService: catalogService}
}

func (c *CatalogController) publishedOnly(ctx *gin.Context) bool {
	claims := util.GetUserFromContext(ctx)
	return claims == nil || claims.Role == model.Student
}

// @Summary Create an activity
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ActivityRequest true "Activity"
// @Success 201 {object} util.Response
// @Router /api/activities [post]
func (c *CatalogController) CreateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.CatalogService.CreateActivity(&req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, activity)
}

// @Summary Get an activity
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity id"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [get]
func (c *CatalogController) GetActivity(ctx *gin.Context) {
	activity, err := c.CatalogService.GetActivity(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, activity)
}

// @Summary List activities
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param type query string false "Activity type" enums(exercise,project,game,reading)
// @Param topic query string false "Topic code"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/activities [get]
func (c *CatalogController) ListActivities(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	activities, total, err := c.CatalogService.ListActivities(
		model.ActivityType(ctx.Query("type")), ctx.Query("topic"), c.publishedOnly(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: activities, Total: total, Page: page, Limit: limit})
}

// @Summary Update an activity
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity id"
// @Param body body service.ActivityRequest true "Activity"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [put]
func (c *CatalogController) UpdateActivity(ctx *gin.Context) {
	var req service.ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := c.CatalogService.UpdateActivity(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, activity)
}

// @Summary Delete an activity
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity id"
// @Success 200 {object} util.Response
// @Router /api/activities/{id} [delete]
func (c *CatalogController) DeleteActivity(ctx *gin.Context) {
	if err := c.CatalogService.DeleteActivity(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Create an assessment
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.AssessmentRequest true "Assessment"
// @Success 201 {object} util.Response
// @Router /api/assessments [post]
func (c *CatalogController) CreateAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.CatalogService.CreateAssessment(&req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// @Summary Get an assessment
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment id"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *CatalogController) GetAssessment(ctx *gin.Context) {
	assessment, err := c.CatalogService.GetAssessment(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, assessment)
}

// @Summary List assessments
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param topic query string false "Topic code"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/assessments [get]
func (c *CatalogController) ListAssessments(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	assessments, total, err := c.CatalogService.ListAssessments(
		ctx.Query("topic"), c.publishedOnly(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: assessments, Total: total, Page: page, Limit: limit})
}

// @Summary Update an assessment
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment id"
// @Param body body service.AssessmentRequest true "Assessment"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [put]
func (c *CatalogController) UpdateAssessment(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.CatalogService.UpdateAssessment(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, assessment)
}

// @Summary Delete an assessment
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment id"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [delete]
func (c *CatalogController) DeleteAssessment(ctx *gin.Context) {
	if err := c.CatalogService.DeleteAssessment(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Create a learning path
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LearningPathRequest true "Learning path"
// @Success 201 {object} util.Response
// @Router /api/learning-paths [post]
func (c *CatalogController) CreateLearningPath(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.CatalogService.CreateLearningPath(&req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, path)
}

// @Summary Get a learning path with its nodes
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path id"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id} [get]
func (c *CatalogController) GetLearningPath(ctx *gin.Context) {
	path, err := c.CatalogService.GetLearningPath(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, path)
}

// @Summary List learning paths
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/learning-paths [get]
func (c *CatalogController) ListLearningPaths(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	paths, total, err := c.CatalogService.ListLearningPaths(c.publishedOnly(ctx), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: paths, Total: total, Page: page, Limit: limit})
}

// @Summary Update a learning path
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path id"
// @Param body body service.LearningPathRequest true "Learning path"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id} [put]
func (c *CatalogController) UpdateLearningPath(ctx *gin.Context) {
	var req service.LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.CatalogService.UpdateLearningPath(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, path)
}

// @Summary Delete a learning path
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Path id"
// @Success 200 {object} util.Response
// @Router /api/learning-paths/{id} [delete]
func (c *CatalogController) DeleteLearningPath(ctx *gin.Context) {
	if err := c.CatalogService.DeleteLearningPath(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}
