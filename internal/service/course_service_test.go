package service

import (
	"context"
	"strings"
	"testing"

	"cognilab_backend/internal/config"
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	db := newTestDB(t)
	cfg := &config.Config{
		Storage: config.StorageConfig{Type: "local", LocalPath: t.TempDir()},
	}
	svc := NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewModuleRepository(db),
		repository.NewLessonRepository(db),
		NewStorageService(cfg),
	)
	return svc, db
}

func createLessonFixture(t *testing.T, db *gorm.DB, instructorID uint) *model.Lesson {
	t.Helper()
	course := model.Course{Title: "Course", InstructorID: &instructorID}
	require.NoError(t, db.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, db.Create(&module).Error)
	lesson := model.Lesson{ModuleID: module.ID, Title: "L"}
	require.NoError(t, db.Create(&lesson).Error)
	return &lesson
}

func TestUploadAttachmentWritesURLToLesson(t *testing.T) {
	svc, db := newCourseService(t)

	lesson := createLessonFixture(t, db, 7)
	claims := &util.Claims{UserID: 7, Role: model.Instructor}

	url, err := svc.UploadAttachment(
		context.Background(),
		lesson.ID,
		claims,
		"notes.pdf",
		strings.NewReader("pdf-bytes"),
		9,
		"application/pdf",
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/lessons/"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	stored, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, url, stored.Attachment)
}

func TestUploadAttachmentRejectsNonOwner(t *testing.T) {
	svc, db := newCourseService(t)

	lesson := createLessonFixture(t, db, 7)
	claims := &util.Claims{UserID: 8, Role: model.Instructor}

	_, err := svc.UploadAttachment(
		context.Background(),
		lesson.ID,
		claims,
		"notes.pdf",
		strings.NewReader("pdf-bytes"),
		9,
		"application/pdf",
	)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	stored, err := svc.GetLesson(lesson.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Attachment)
}

func TestUploadAttachmentUnknownLesson(t *testing.T) {
	svc, _ := newCourseService(t)

	claims := &util.Claims{UserID: 7, Role: model.Instructor}
	_, err := svc.UploadAttachment(
		context.Background(),
		999,
		claims,
		"notes.pdf",
		strings.NewReader("pdf-bytes"),
		9,
		"application/pdf",
	)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
