package model

// swagger:model Course
type Course struct {
	BaseModel
	Title        string   `gorm:"size:255;not null;index" json:"title"`
	Description  string   `gorm:"type:text" json:"description"`
	InstructorID *uint    `gorm:"index" json:"instructorId"`
	Instructor   *User    `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Modules      []Module `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
