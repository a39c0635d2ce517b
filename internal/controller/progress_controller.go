package controller

import (
	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// resolveStudentID returns the subject student of a progress request.
// Students always act on themselves; teachers and admins may address any
// student through the studentId path parameter.
func resolveStudentID(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}

	param := ctx.Param("studentId")
	if param == "" || claims.Role == model.Student {
		return claims.UserID, true
	}
	return util.MustParseUint(param), true
}

// @Summary Get a student's progress aggregate
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	p, err := c.ProgressService.GetProgress(studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary Record an activity completion
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityId path int true "Activity id"
// @Param body body service.CompleteActivityRequest true "Completion details"
// @Success 200 {object} util.Response
// @Router /api/progress/activities/{activityId}/complete [post]
func (c *ProgressController) CompleteActivity(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var req service.CompleteActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProgressService.CompleteActivity(
		ctx.Request.Context(), studentID, util.MustParseUint(ctx.Param("activityId")), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary Submit an assessment result
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assessmentId path int true "Assessment id"
// @Param body body service.SubmitAssessmentRequest true "Submission"
// @Success 200 {object} util.Response
// @Router /api/progress/assessments/{assessmentId}/submit [post]
func (c *ProgressController) SubmitAssessment(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	outcome, err := c.ProgressService.SubmitAssessment(
		ctx.Request.Context(), studentID, util.MustParseUint(ctx.Param("assessmentId")), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, outcome)
}

// @Summary Enroll in a learning path
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param pathId path int true "Path id"
// @Success 200 {object} util.Response
// @Router /api/progress/paths/{pathId}/enroll [post]
func (c *ProgressController) EnrollInPath(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	p, err := c.ProgressService.EnrollInPath(
		ctx.Request.Context(), studentID, util.MustParseUint(ctx.Param("pathId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary Mark a path node completed
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param pathId path int true "Path id"
// @Param nodeId path int true "Node id"
// @Success 200 {object} util.Response
// @Router /api/progress/paths/{pathId}/nodes/{nodeId}/complete [post]
func (c *ProgressController) CompletePathNode(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	p, err := c.ProgressService.CompletePathNode(
		ctx.Request.Context(), studentID,
		util.MustParseUint(ctx.Param("pathId")),
		util.MustParseUint(ctx.Param("nodeId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary Create a learning goal
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LearningGoalRequest true "Goal"
// @Success 201 {object} util.Response
// @Router /api/progress/goals [post]
func (c *ProgressController) CreateGoal(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var req service.LearningGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.ProgressService.CreateGoal(studentID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, goal)
}

// @Summary Update a learning goal
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal id"
// @Param body body service.UpdateLearningGoalRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Router /api/progress/goals/{goalId} [put]
func (c *ProgressController) UpdateGoal(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var req service.UpdateLearningGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.ProgressService.UpdateGoal(studentID, ctx.Param("goalId"), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, goal)
}

// @Summary Delete a learning goal
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param goalId path string true "Goal id"
// @Success 200 {object} util.Response
// @Router /api/progress/goals/{goalId} [delete]
func (c *ProgressController) DeleteGoal(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	if err := c.ProgressService.DeleteGoal(studentID, ctx.Param("goalId")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Recompute derived insights
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student id"
// @Success 200 {object} util.Response
// @Router /api/students/{studentId}/insights/recompute [post]
func (c *ProgressController) RecomputeInsights(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	p, err := c.ProgressService.RecomputeInsights(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}
