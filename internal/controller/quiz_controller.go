package controller

import (
	"cognilab_backend/internal/service"
	"cognilab_backend/internal/util"
	"cognilab_backend/pkg/monitoring"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

type QuizSubmissionRequest struct {
	Answers []service.Answer `json:"answers" binding:"required"`
}

// @Summary 提交测验
// @Description 对照课时内嵌题库评分，并更新提交者的技能熟练度
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课时ID"
// @Param body body QuizSubmissionRequest true "作答列表"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/submit_quiz [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID := util.MustParseUint(ctx.Param("id"))
	if lessonID == 0 {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	var req QuizSubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.QuizService.SubmitQuiz(ctx.Request.Context(), claims.UserID, lessonID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			monitoring.QuizSubmissions.WithLabelValues("not_found").Inc()
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidQuizFormat):
			monitoring.QuizSubmissions.WithLabelValues("invalid_format").Inc()
			util.BadRequest(ctx, err.Error())
		default:
			monitoring.QuizSubmissions.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSubmissions.WithLabelValues("graded").Inc()
	util.Success(ctx, result)
}
