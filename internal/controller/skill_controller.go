package controller

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/service"
	"cognilab_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

type SkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// @Summary 创建技能
// @Tags 技能管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SkillRequest true "技能信息"
// @Success 201 {object} util.Response
// @Router /api/admin/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	var req SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill := &model.Skill{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := c.SkillService.Create(skill); err != nil {
		util.Conflict(ctx, "skill name already exists")
		return
	}

	util.Created(ctx, skill)
}

// @Summary 技能列表
// @Tags 技能管理
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	skills, err := c.SkillService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, skills)
}

// @Summary 技能详情
// @Tags 技能管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/admin/skills/{id} [get]
func (c *SkillController) GetSkill(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	skill, err := c.SkillService.Get(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, skill)
}

// @Summary 更新技能（局部）
// @Tags 技能管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param body body service.SkillUpdate true "更新字段"
// @Success 200 {object} util.Response
// @Router /api/admin/skills/{id} [patch]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	var update service.SkillUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.Update(id, update)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, skill)
}

// @Summary 删除技能
// @Description 技能仍被教学单元或熟练度记录引用时拒绝删除
// @Tags 技能管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/admin/skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.SkillService.Delete(id); err != nil {
		if errors.Is(err, util.ErrSkillInUse) {
			util.Conflict(ctx, err.Error())
			return
		}
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 教授某技能的教学单元
// @Description 返回教授该技能的教学单元及其所属课程，顺序固定
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/skills/{id}/modules [get]
func (c *SkillController) ListSkillModules(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	refs, err := c.SkillService.TeachersOfSkill(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, refs)
}

// @Summary 关联技能与教学单元
// @Tags 技能管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param moduleId path int true "单元ID"
// @Success 200 {object} util.Response
// @Router /api/admin/skills/{id}/modules/{moduleId} [put]
func (c *SkillController) AttachModule(ctx *gin.Context) {
	skillID := util.MustParseUint(ctx.Param("id"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	if skillID == 0 || moduleID == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.SkillService.AttachModule(skillID, moduleID); err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 解除技能与教学单元的关联
// @Tags 技能管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "技能ID"
// @Param moduleId path int true "单元ID"
// @Success 200 {object} util.Response
// @Router /api/admin/skills/{id}/modules/{moduleId} [delete]
func (c *SkillController) DetachModule(ctx *gin.Context) {
	skillID := util.MustParseUint(ctx.Param("id"))
	moduleID := util.MustParseUint(ctx.Param("moduleId"))
	if skillID == 0 || moduleID == 0 {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.SkillService.DetachModule(skillID, moduleID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
