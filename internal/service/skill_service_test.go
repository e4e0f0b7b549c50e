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

func newSkillService(t *testing.T) (*SkillService, *gorm.DB) {
	db := newTestDB(t)
	return NewSkillService(repository.NewSkillRepository(db), repository.NewModuleRepository(db)), db
}

func TestDeleteSkillRejectedWhileReferenced(t *testing.T) {
	svc, db := newSkillService(t)

	course := model.Course{Title: "Course"}
	require.NoError(t, db.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, db.Create(&module).Error)

	skill := &model.Skill{Name: "Neural Networks"}
	require.NoError(t, svc.Create(skill))
	require.NoError(t, svc.AttachModule(skill.ID, module.ID))

	assert.ErrorIs(t, svc.Delete(skill.ID), util.ErrSkillInUse)

	require.NoError(t, svc.DetachModule(skill.ID, module.ID))
	require.NoError(t, svc.Delete(skill.ID))

	_, err := svc.Get(skill.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteSkillRejectedWhileProficiencyExists(t *testing.T) {
	svc, db := newSkillService(t)

	skill := &model.Skill{Name: "Linear Algebra"}
	require.NoError(t, svc.Create(skill))

	profRepo := repository.NewProficiencyRepository(db)
	require.NoError(t, profRepo.Upsert(1, skill.ID, 40))

	assert.ErrorIs(t, svc.Delete(skill.ID), util.ErrSkillInUse)
}

func TestAttachModuleUnknownSkillOrModule(t *testing.T) {
	svc, db := newSkillService(t)

	course := model.Course{Title: "Course"}
	require.NoError(t, db.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, db.Create(&module).Error)

	skill := &model.Skill{Name: "Python Basics"}
	require.NoError(t, svc.Create(skill))

	assert.ErrorIs(t, svc.AttachModule(999, module.ID), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.AttachModule(skill.ID, 999), gorm.ErrRecordNotFound)
}

func TestTeachersOfSkillLookup(t *testing.T) {
	svc, db := newSkillService(t)

	_, err := svc.TeachersOfSkill(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	skill := &model.Skill{Name: "Neural Networks"}
	require.NoError(t, svc.Create(skill))

	refs, err := svc.TeachersOfSkill(skill.ID)
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)

	course := model.Course{Title: "Course"}
	require.NoError(t, db.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, db.Create(&module).Error)
	require.NoError(t, svc.AttachModule(skill.ID, module.ID))

	refs, err = svc.TeachersOfSkill(skill.ID)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, course.ID, refs[0].CourseID)
	assert.Equal(t, module.ID, refs[0].ModuleID)
}

func TestUpdateSkillPartialFields(t *testing.T) {
	svc, _ := newSkillService(t)

	skill := &model.Skill{Name: "Old Name", Description: "old"}
	require.NoError(t, svc.Create(skill))

	newName := "New Name"
	updated, err := svc.Update(skill.ID, SkillUpdate{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "old", updated.Description)
}
