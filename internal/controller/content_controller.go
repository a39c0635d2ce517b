package controller

import (
	"strconv"

	"learning_pulse_backend/internal/model"
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary Create a course
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CourseRequest true "Course"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.CreateCourse(&req, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Get a course with its lessons
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	course, err := c.ContentService.GetCourse(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// @Summary List courses
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param subject query string false "Subject filter"
// @Param gradeBand query string false "Grade band filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	publishedOnly := claims == nil || claims.Role == model.Student

	courses, total, err := c.ContentService.ListCourses(
		ctx.Query("subject"), ctx.Query("gradeBand"), publishedOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary Update a course
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param body body service.CourseRequest true "Course"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.ContentService.UpdateCourse(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	if err := c.ContentService.DeleteCourse(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a lesson to a course
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param body body service.LessonRequest true "Lesson"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(util.MustParseUint(ctx.Param("id")), &req, claims.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Upload a video lesson
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param title formData string true "Lesson title"
// @Param file formData file true "Video file"
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/lessons/video [post]
func (c *ContentController) UploadLessonVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	lesson, err := c.ContentService.UploadLessonVideo(
		ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), header, title, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Update a lesson
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson id"
// @Param body body service.LessonRequest true "Lesson"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(util.MustParseUint(ctx.Param("lessonId")), &req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Delete a lesson
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param lessonId path int true "Lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonId} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	if err := c.ContentService.DeleteLesson(util.MustParseUint(ctx.Param("lessonId"))); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, nil)
}
