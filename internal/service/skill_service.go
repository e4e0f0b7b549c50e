package service

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"
)

type SkillService struct {
	SkillRepo  *repository.SkillRepository
	ModuleRepo *repository.ModuleRepository
}

func NewSkillService(skillRepo *repository.SkillRepository, moduleRepo *repository.ModuleRepository) *SkillService {
	return &SkillService{
		SkillRepo:  skillRepo,
		ModuleRepo: moduleRepo,
	}
}

func (s *SkillService) Create(skill *model.Skill) error {
	return s.SkillRepo.Create(skill)
}

func (s *SkillService) Get(id uint) (*model.Skill, error) {
	return s.SkillRepo.FindByID(id)
}

func (s *SkillService) List() ([]model.Skill, error) {
	return s.SkillRepo.List()
}

// SkillUpdate 稀疏更新：技能标识不可变，只允许改名称和描述
type SkillUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *SkillService) Update(id uint, update SkillUpdate) (*model.Skill, error) {
	skill, err := s.SkillRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		skill.Name = *update.Name
	}
	if update.Description != nil {
		skill.Description = *update.Description
	}

	if err := s.SkillRepo.Update(skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// Delete 仅允许删除未被引用的技能，保持引用完整性
func (s *SkillService) Delete(id uint) error {
	if _, err := s.SkillRepo.FindByID(id); err != nil {
		return err
	}

	refs, err := s.SkillRepo.CountReferences(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return util.ErrSkillInUse
	}

	return s.SkillRepo.Delete(id)
}

func (s *SkillService) AttachModule(skillID, moduleID uint) error {
	if _, err := s.SkillRepo.FindByID(skillID); err != nil {
		return err
	}
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return err
	}
	return s.SkillRepo.AttachModule(skillID, moduleID)
}

func (s *SkillService) DetachModule(skillID, moduleID uint) error {
	return s.SkillRepo.DetachModule(skillID, moduleID)
}

// TeachersOfSkill 查询教授某技能的教学单元。技能不存在时报错，
// 存在但无人教授时返回空列表而不是 null
func (s *SkillService) TeachersOfSkill(skillID uint) ([]repository.ModuleRef, error) {
	if _, err := s.SkillRepo.FindByID(skillID); err != nil {
		return nil, err
	}

	refs, err := s.SkillRepo.TeachersOfSkill(skillID)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []repository.ModuleRef{}
	}
	return refs, nil
}
