package model

type LessonContentType string

const (
	LessonText  LessonContentType = "text"
	LessonVideo LessonContentType = "video"
	LessonQuiz  LessonContentType = "quiz"
)

// Lesson 课时。Content 是不透明的内容列：text/video 时为正文或链接，
// quiz 时为序列化的题库 JSON，只允许测验解析器解码。
// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint              `gorm:"index;not null" json:"moduleId"`
	Title       string            `gorm:"size:255;not null" json:"title"`
	ContentType LessonContentType `gorm:"size:20;default:'text'" json:"contentType"`
	Content     string            `gorm:"type:longtext" json:"content"`
	Attachment  string            `gorm:"size:255" json:"attachment"`
	Order       int               `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
