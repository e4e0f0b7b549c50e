package service

import (
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
	Storage    *StorageService
}

func NewCourseService(courseRepo *repository.CourseRepository, moduleRepo *repository.ModuleRepository, lessonRepo *repository.LessonRepository, storage *StorageService) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
		Storage:    storage,
	}
}

// canMutate 课程归属校验：仅课程讲师本人或管理员可以改动课程内容
func canMutate(course *model.Course, claims *util.Claims) bool {
	if claims.IsAdmin() {
		return true
	}
	return course.InstructorID != nil && *course.InstructorID == claims.UserID
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit)
}

// CourseUpdate 稀疏更新，nil 字段保持原值
type CourseUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (s *CourseService) UpdateCourse(id uint, update CourseUpdate, claims *util.Claims) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canMutate(course, claims) {
		return nil, util.ErrPermissionDenied
	}

	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(id uint, claims *util.Claims) error {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if !canMutate(course, claims) {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(id)
}

func (s *CourseService) CreateModule(courseID uint, module *model.Module, claims *util.Claims) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if !canMutate(course, claims) {
		return util.ErrPermissionDenied
	}

	module.CourseID = courseID
	return s.ModuleRepo.Create(module)
}

func (s *CourseService) ListModules(courseID uint) ([]model.Module, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, err
	}
	return s.ModuleRepo.ListByCourse(courseID)
}

type ModuleUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (s *CourseService) UpdateModule(id uint, update ModuleUpdate, claims *util.Claims) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canMutate(course, claims) {
		return nil, util.ErrPermissionDenied
	}

	if update.Title != nil {
		module.Title = *update.Title
	}
	if update.Description != nil {
		module.Description = *update.Description
	}
	if update.Order != nil {
		module.Order = *update.Order
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *CourseService) DeleteModule(id uint, claims *util.Claims) error {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return err
	}
	if !canMutate(course, claims) {
		return util.ErrPermissionDenied
	}
	return s.ModuleRepo.Delete(id)
}

func (s *CourseService) CreateLesson(moduleID uint, lesson *model.Lesson, claims *util.Claims) error {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return err
	}
	if !canMutate(course, claims) {
		return util.ErrPermissionDenied
	}

	lesson.ModuleID = moduleID
	return s.LessonRepo.Create(lesson)
}

func (s *CourseService) GetLesson(id uint) (*model.Lesson, error) {
	return s.LessonRepo.FindByID(id)
}

func (s *CourseService) ListLessons(moduleID uint) ([]model.Lesson, error) {
	if _, err := s.ModuleRepo.FindByID(moduleID); err != nil {
		return nil, err
	}
	return s.LessonRepo.ListByModule(moduleID)
}

// UploadAttachment 上传课时附件并把访问地址写回课时，归属校验与其他课时改动一致
func (s *CourseService) UploadAttachment(ctx context.Context, lessonID uint, claims *util.Claims, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return "", err
	}
	module, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return "", err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return "", err
	}
	if !canMutate(course, claims) {
		return "", util.ErrPermissionDenied
	}

	objectName := fmt.Sprintf("lessons/%d/%s%s", lessonID, uuid.New().String(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return "", err
	}

	lesson.Attachment = url
	if err := s.LessonRepo.Update(lesson); err != nil {
		return "", err
	}
	return url, nil
}

type LessonUpdate struct {
	Title       *string                  `json:"title"`
	ContentType *model.LessonContentType `json:"contentType"`
	Content     *string                  `json:"content"`
	Order       *int                     `json:"order"`
}

func (s *CourseService) UpdateLesson(id uint, update LessonUpdate, claims *util.Claims) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	module, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if !canMutate(course, claims) {
		return nil, util.ErrPermissionDenied
	}

	if update.Title != nil {
		lesson.Title = *update.Title
	}
	if update.ContentType != nil {
		lesson.ContentType = *update.ContentType
	}
	if update.Content != nil {
		lesson.Content = *update.Content
	}
	if update.Order != nil {
		lesson.Order = *update.Order
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(id uint, claims *util.Claims) error {
	lesson, err := s.LessonRepo.FindByID(id)
	if err != nil {
		return err
	}
	module, err := s.ModuleRepo.FindByID(lesson.ModuleID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return err
	}
	if !canMutate(course, claims) {
		return util.ErrPermissionDenied
	}
	return s.LessonRepo.Delete(id)
}
