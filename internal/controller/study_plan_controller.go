package controller

import (
	"cognilab_backend/internal/service"
	"cognilab_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StudyPlanController struct {
	StudyPlanService *service.StudyPlanService
}

func NewStudyPlanController(studyPlanService *service.StudyPlanService) *StudyPlanController {
	return &StudyPlanController{StudyPlanService: studyPlanService}
}

// @Summary 个人学习计划
// @Description 按最弱技能在前的顺序返回低于阈值的技能及教授它们的教学单元
// @Tags 学习计划
// @Produce json
// @Security ApiKeyAuth
// @Param threshold query int false "熟练度阈值（默认 60）"
// @Success 200 {object} util.Response
// @Router /api/users/me/study-plan [get]
func (c *StudyPlanController) GetStudyPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	threshold := 0
	if raw := ctx.Query("threshold"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 100 {
			util.BadRequest(ctx, "threshold must be an integer between 1 and 100")
			return
		}
		threshold = v
	}

	recs, err := c.StudyPlanService.BuildPlan(ctx.Request.Context(), claims.UserID, threshold)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"recommendations": recs})
}
