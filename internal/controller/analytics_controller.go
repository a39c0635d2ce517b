package controller

import (
	"time"

	"learning_pulse_backend/internal/progress"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

func timeRange(ctx *gin.Context) (time.Time, time.Time) {
	var from, to time.Time
	if v := ctx.Query("from"); v != "" {
		from, _ = time.Parse(time.RFC3339, v)
	}
	if v := ctx.Query("to"); v != "" {
		to, _ = time.Parse(time.RFC3339, v)
	}
	return from, to
}

// @Summary Log interaction events
// @Description Accepts a batch of client events. Events are only stored when the student has analytics consent.
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []service.LogEventRequest true "Events"
// @Success 200 {object} util.Response
// @Router /api/analytics/events [post]
func (c *AnalyticsController) LogEvents(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var reqs []service.LogEventRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	accepted, err := c.AnalyticsService.LogEvents(
		ctx.Request.Context(), studentID, reqs, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"accepted": accepted})
}

// @Summary Aggregated activity summary for a student
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucketing" enums(day,topic,resource) default(day)
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} util.Response
// @Router /api/analytics/summary [get]
func (c *AnalyticsController) StudentSummary(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	from, to := timeRange(ctx)
	g := progress.Granularity(ctx.DefaultQuery("granularity", string(progress.ByDay)))

	buckets, err := c.AnalyticsService.StudentSummary(studentID, g, from, to)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, buckets)
}

// @Summary Session engagement view for a student
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} util.Response
// @Router /api/analytics/engagement [get]
func (c *AnalyticsController) StudentEngagement(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	from, to := timeRange(ctx)
	summary, err := c.AnalyticsService.StudentEngagement(studentID, from, to)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// @Summary Daily summary for one topic across students
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param topicId path string true "Topic code"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} util.Response
// @Router /api/analytics/topics/{topicId} [get]
func (c *AnalyticsController) TopicSummary(ctx *gin.Context) {
	from, to := timeRange(ctx)
	buckets, err := c.AnalyticsService.TopicSummary(ctx.Param("topicId"), from, to)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, buckets)
}

// @Summary Bloom mastery per topic for a student
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analytics/bloom [get]
func (c *AnalyticsController) BloomMastery(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	mastery, err := c.AnalyticsService.BloomMastery(studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, mastery)
}
