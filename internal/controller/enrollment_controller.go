package controller

import (
	"cognilab_backend/internal/service"
	"cognilab_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollmentRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// @Summary 报名课程
// @Tags 报名
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EnrollmentRequest true "课程"
// @Success 201 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req EnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Created(ctx, enrollment)
}

// @Summary 我的报名
// @Tags 报名
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/users/me/enrollments [get]
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, enrollments)
}
