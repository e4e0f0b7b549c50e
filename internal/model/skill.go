package model

// Skill 用户可被评估的能力项（如"神经网络基础"），由管理员维护
// swagger:model Skill
type Skill struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Skill) TableName() string {
	return "skills"
}
