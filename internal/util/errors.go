package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this course")

	// ErrInvalidQuizFormat 课时不是测验、内容为空或无法解码，评分请求整体失败
	ErrInvalidQuizFormat = errors.New("invalid quiz format")
	// ErrSkillInUse 技能仍被教学单元或熟练度记录引用，拒绝删除
	ErrSkillInUse = errors.New("skill is still referenced by modules or proficiency records")
	// ErrScoreOutOfRange 熟练度分数必须在 0-100 之间
	ErrScoreOutOfRange = errors.New("proficiency score out of range")
)
