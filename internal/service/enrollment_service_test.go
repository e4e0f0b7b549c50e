package service

import (
	"testing"

	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T) (*EnrollmentService, *gorm.DB) {
	db := newTestDB(t)
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
	), db
}

func TestEnrollCreatesOnceAndRejectsDuplicate(t *testing.T) {
	svc, db := newEnrollmentService(t)

	course := model.Course{Title: "ML 101"}
	require.NoError(t, db.Create(&course).Error)

	enrollment, err := svc.Enroll(1, course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), enrollment.UserID)
	assert.Equal(t, course.ID, enrollment.CourseID)

	_, err = svc.Enroll(1, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	_, err := svc.Enroll(1, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListForUserReturnsOwnEnrollments(t *testing.T) {
	svc, db := newEnrollmentService(t)

	courseA := model.Course{Title: "A"}
	courseB := model.Course{Title: "B"}
	require.NoError(t, db.Create(&courseA).Error)
	require.NoError(t, db.Create(&courseB).Error)

	_, err := svc.Enroll(1, courseA.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(2, courseB.ID)
	require.NoError(t, err)

	enrollments, err := svc.ListForUser(1)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, courseA.ID, enrollments[0].CourseID)
}
