package model

import "time"

// UserSkillProficiency 用户在某技能上的熟练度，(user_id, skill_id) 至多一行。
// 分数为 0-100 的整数，每次测验评分后整行覆盖，时间戳同步刷新。
// swagger:model UserSkillProficiency
type UserSkillProficiency struct {
	BaseModel
	UserID           uint      `gorm:"uniqueIndex:idx_user_skill;not null" json:"userId"`
	SkillID          uint      `gorm:"uniqueIndex:idx_user_skill;not null" json:"skillId"`
	ProficiencyScore int       `gorm:"not null" json:"proficiencyScore"`
	LastAssessedAt   time.Time `json:"lastAssessedAt"`
	Skill            *Skill    `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

func (UserSkillProficiency) TableName() string {
	return "user_skill_proficiencies"
}
