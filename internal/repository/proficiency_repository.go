package repository

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProficiencyRepository struct {
	DB *gorm.DB
}

func NewProficiencyRepository(db *gorm.DB) *ProficiencyRepository {
	return &ProficiencyRepository{DB: db}
}

// Upsert 写入用户某技能的熟练度。(user_id, skill_id) 已存在时覆盖分数并刷新
// 评估时间，否则插入新行。冲突处理落在数据库的行级原子操作上，
// 同一键的并发提交按后写覆盖，不会交错出部分写入。
func (r *ProficiencyRepository) Upsert(userID, skillID uint, score int) error {
	if score < 0 || score > 100 {
		return util.ErrScoreOutOfRange
	}

	now := time.Now()
	row := model.UserSkillProficiency{
		UserID:           userID,
		SkillID:          skillID,
		ProficiencyScore: score,
		LastAssessedAt:   now,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"proficiency_score": score,
			"last_assessed_at":  now,
			"updated_at":        now,
		}),
	}).Create(&row).Error
}

// Get 查询单条熟练度。没有记录返回 gorm.ErrRecordNotFound，
// 调用方必须把"无记录"当作未知，而不是 0 分。
func (r *ProficiencyRepository) Get(userID, skillID uint) (*model.UserSkillProficiency, error) {
	var row model.UserSkillProficiency
	err := r.DB.Where("user_id = ? AND skill_id = ?", userID, skillID).First(&row).Error
	return &row, err
}

// ListForUser 返回用户全部熟练度，按分数升序、同分按技能名升序，
// 保证"最弱技能在前"的顺序是确定的
func (r *ProficiencyRepository) ListForUser(userID uint) ([]model.UserSkillProficiency, error) {
	var rows []model.UserSkillProficiency
	err := r.DB.
		Joins("JOIN skills ON skills.id = user_skill_proficiencies.skill_id").
		Where("user_skill_proficiencies.user_id = ?", userID).
		Order("user_skill_proficiencies.proficiency_score asc, skills.name asc").
		Preload("Skill").
		Find(&rows).Error
	return rows, err
}
