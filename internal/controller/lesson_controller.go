package controller

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/service"
	"cognilab_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LessonController struct {
	CourseService *service.CourseService
}

func NewLessonController(courseService *service.CourseService) *LessonController {
	return &LessonController{CourseService: courseService}
}

type LessonRequest struct {
	Title       string                  `json:"title" binding:"required"`
	ContentType model.LessonContentType `json:"contentType"`
	Content     string                  `json:"content"`
	Order       int                     `json:"order"`
}

// @Summary 在教学单元下创建课时
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "单元ID"
// @Param body body LessonRequest true "课时信息"
// @Success 201 {object} util.Response
// @Router /api/modules/{id}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = model.LessonText
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		ContentType: contentType,
		Content:     req.Content,
		Order:       req.Order,
	}

	if err := c.CourseService.CreateLesson(moduleID, lesson, claims); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Created(ctx, lesson)
}

// @Summary 教学单元的课时列表
// @Tags 课时
// @Produce json
// @Param id path int true "单元ID"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	moduleID := util.MustParseUint(ctx.Param("id"))
	if moduleID == 0 {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	lessons, err := c.CourseService.ListLessons(moduleID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, lessons)
}

// @Summary 课时详情
// @Tags 课时
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	lesson, err := c.CourseService.GetLesson(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, lesson)
}

// @Summary 更新课时（局部）
// @Tags 课时
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param body body service.LessonUpdate true "更新字段"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [patch]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var update service.LessonUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.CourseService.UpdateLesson(id, update, claims)
	if err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, lesson)
}

// @Summary 删除课时
// @Tags 课时
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.CourseService.DeleteLesson(id, claims); err != nil {
		if errors.Is(err, util.ErrPermissionDenied) {
			util.Forbidden(ctx)
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 上传课时附件
// @Tags 课时
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param file formData file true "附件文件"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/attachment [post]
func (c *LessonController) UploadAttachment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.CourseService.UploadAttachment(
		ctx.Request.Context(),
		id,
		claims,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
