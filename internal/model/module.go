package model

// Module 课程下的教学单元，Order 决定展示顺序
// swagger:model Module
type Module struct {
	BaseModel
	CourseID    uint     `gorm:"index;not null" json:"courseId"`
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	Order       int      `gorm:"default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// ModuleSkill 技能与教学单元的关联边，学习计划通过它反查教学内容
type ModuleSkill struct {
	ModuleID uint `gorm:"primaryKey;autoIncrement:false" json:"moduleId"`
	SkillID  uint `gorm:"primaryKey;autoIncrement:false" json:"skillId"`
}

func (ModuleSkill) TableName() string {
	return "module_skills"
}
