package repository

import (
	"cognilab_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkillRepository struct {
	DB *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{DB: db}
}

func (r *SkillRepository) Create(skill *model.Skill) error {
	return r.DB.Create(skill).Error
}

func (r *SkillRepository) FindByID(id uint) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.First(&skill, id).Error
	return &skill, err
}

func (r *SkillRepository) FindByName(name string) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.Where("name = ?", name).First(&skill).Error
	return &skill, err
}

func (r *SkillRepository) List() ([]model.Skill, error) {
	var skills []model.Skill
	err := r.DB.Order("name asc").Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Update(skill *model.Skill) error {
	return r.DB.Save(skill).Error
}

func (r *SkillRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Skill{}, id).Error
}

// CountReferences 统计技能被教学单元关联和熟练度记录引用的总数，
// 删除前必须为 0
func (r *SkillRepository) CountReferences(skillID uint) (int64, error) {
	var edges int64
	if err := r.DB.Model(&model.ModuleSkill{}).Where("skill_id = ?", skillID).Count(&edges).Error; err != nil {
		return 0, err
	}

	var rows int64
	if err := r.DB.Model(&model.UserSkillProficiency{}).Where("skill_id = ?", skillID).Count(&rows).Error; err != nil {
		return 0, err
	}

	return edges + rows, nil
}

func (r *SkillRepository) AttachModule(skillID, moduleID uint) error {
	edge := model.ModuleSkill{ModuleID: moduleID, SkillID: skillID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (r *SkillRepository) DetachModule(skillID, moduleID uint) error {
	return r.DB.Where("skill_id = ? AND module_id = ?", skillID, moduleID).
		Delete(&model.ModuleSkill{}).Error
}

// ModuleRef 教授某技能的教学单元及其所属课程
type ModuleRef struct {
	CourseID uint `gorm:"column:course_id" json:"course_id"`
	ModuleID uint `gorm:"column:module_id" json:"module_id"`
}

// TeachersOfSkill 反查教授该技能的教学单元，顺序固定（课程、单元递增）
func (r *SkillRepository) TeachersOfSkill(skillID uint) ([]ModuleRef, error) {
	var refs []ModuleRef
	err := r.DB.Table("module_skills").
		Select("modules.course_id AS course_id, modules.id AS module_id").
		Joins("JOIN modules ON modules.id = module_skills.module_id AND modules.deleted_at IS NULL").
		Where("module_skills.skill_id = ?", skillID).
		Order("modules.course_id asc, modules.id asc").
		Scan(&refs).Error
	return refs, err
}
