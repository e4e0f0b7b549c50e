package repository

import (
	"testing"

	"cognilab_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkillRepo(t *testing.T) *SkillRepository {
	db := newTestDB(t,
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Skill{},
		&model.ModuleSkill{},
		&model.UserSkillProficiency{},
	)
	return NewSkillRepository(db)
}

func TestAttachModuleIsIdempotent(t *testing.T) {
	repo := newSkillRepo(t)

	course := model.Course{Title: "ML 101"}
	require.NoError(t, repo.DB.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "Week 1"}
	require.NoError(t, repo.DB.Create(&module).Error)
	skill := model.Skill{Name: "Neural Networks"}
	require.NoError(t, repo.DB.Create(&skill).Error)

	require.NoError(t, repo.AttachModule(skill.ID, module.ID))
	require.NoError(t, repo.AttachModule(skill.ID, module.ID))

	var count int64
	require.NoError(t, repo.DB.Model(&model.ModuleSkill{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestTeachersOfSkillOrderedByCourseThenModule(t *testing.T) {
	repo := newSkillRepo(t)

	courseA := model.Course{Title: "Course A"}
	courseB := model.Course{Title: "Course B"}
	require.NoError(t, repo.DB.Create(&courseA).Error)
	require.NoError(t, repo.DB.Create(&courseB).Error)

	m1 := model.Module{CourseID: courseB.ID, Title: "B1"}
	m2 := model.Module{CourseID: courseA.ID, Title: "A1"}
	m3 := model.Module{CourseID: courseA.ID, Title: "A2"}
	require.NoError(t, repo.DB.Create(&m1).Error)
	require.NoError(t, repo.DB.Create(&m2).Error)
	require.NoError(t, repo.DB.Create(&m3).Error)

	skill := model.Skill{Name: "Linear Algebra"}
	require.NoError(t, repo.DB.Create(&skill).Error)

	require.NoError(t, repo.AttachModule(skill.ID, m1.ID))
	require.NoError(t, repo.AttachModule(skill.ID, m2.ID))
	require.NoError(t, repo.AttachModule(skill.ID, m3.ID))

	refs, err := repo.TeachersOfSkill(skill.ID)
	require.NoError(t, err)
	require.Len(t, refs, 3)

	assert.Equal(t, []ModuleRef{
		{CourseID: courseA.ID, ModuleID: m2.ID},
		{CourseID: courseA.ID, ModuleID: m3.ID},
		{CourseID: courseB.ID, ModuleID: m1.ID},
	}, refs)
}

func TestTeachersOfSkillSkipsDeletedModules(t *testing.T) {
	repo := newSkillRepo(t)

	course := model.Course{Title: "Course"}
	require.NoError(t, repo.DB.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, repo.DB.Create(&module).Error)
	skill := model.Skill{Name: "Python Basics"}
	require.NoError(t, repo.DB.Create(&skill).Error)
	require.NoError(t, repo.AttachModule(skill.ID, module.ID))

	require.NoError(t, repo.DB.Delete(&model.Module{}, module.ID).Error)

	refs, err := repo.TeachersOfSkill(skill.ID)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestCountReferencesSumsEdgesAndProficiencies(t *testing.T) {
	repo := newSkillRepo(t)

	course := model.Course{Title: "Course"}
	require.NoError(t, repo.DB.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "M"}
	require.NoError(t, repo.DB.Create(&module).Error)
	skill := model.Skill{Name: "Prompt Engineering"}
	require.NoError(t, repo.DB.Create(&skill).Error)

	refs, err := repo.CountReferences(skill.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, refs)

	require.NoError(t, repo.AttachModule(skill.ID, module.ID))
	profRepo := NewProficiencyRepository(repo.DB)
	require.NoError(t, profRepo.Upsert(1, skill.ID, 50))

	refs, err = repo.CountReferences(skill.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, refs)
}
