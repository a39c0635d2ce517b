package controller

import (
	"learning_pulse_backend/internal/service"
	"learning_pulse_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ConsentController struct {
	ConsentService *service.ConsentService
}

func NewConsentController(consentService *service.ConsentService) *ConsentController {
	return &ConsentController{ConsentService: consentService}
}

// @Summary Get consent flags
// @Tags consent
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/consent [get]
func (c *ConsentController) Get(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	rec, err := c.ConsentService.Get(studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary Set consent flags
// @Description Withdrawing analytics consent also purges previously collected events.
// @Tags consent
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ConsentRequest true "Flags"
// @Success 200 {object} util.Response
// @Router /api/consent [put]
func (c *ConsentController) Update(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	var req service.ConsentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.ConsentService.Update(studentID, &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary Export all stored data for a student
// @Tags consent
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/consent/export [get]
func (c *ConsentController) Export(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	export, err := c.ConsentService.Export(studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, export)
}

// @Summary Erase a student's analytics and progress data
// @Tags consent
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/consent/erase [post]
func (c *ConsentController) Erase(ctx *gin.Context) {
	studentID, ok := resolveStudentID(ctx)
	if !ok {
		return
	}

	if err := c.ConsentService.Erase(studentID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
