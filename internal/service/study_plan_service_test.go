package service

import (
	"context"
	"testing"

	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type studyPlanFixture struct {
	svc      *StudyPlanService
	db       *gorm.DB
	profRepo *repository.ProficiencyRepository
	skills   map[string]uint
}

func newStudyPlanFixture(t *testing.T) *studyPlanFixture {
	db := newTestDB(t)
	profRepo := repository.NewProficiencyRepository(db)
	skillRepo := repository.NewSkillRepository(db)

	return &studyPlanFixture{
		svc:      NewStudyPlanService(profRepo, skillRepo, nil, 0),
		db:       db,
		profRepo: profRepo,
		skills:   map[string]uint{},
	}
}

func (f *studyPlanFixture) addSkill(t *testing.T, name string, userID uint, score int) uint {
	t.Helper()
	skill := model.Skill{Name: name}
	require.NoError(t, f.db.Create(&skill).Error)
	require.NoError(t, f.profRepo.Upsert(userID, skill.ID, score))
	f.skills[name] = skill.ID
	return skill.ID
}

func (f *studyPlanFixture) addTeachingModule(t *testing.T, skillID uint) (uint, uint) {
	t.Helper()
	course := model.Course{Title: "Course"}
	require.NoError(t, f.db.Create(&course).Error)
	module := model.Module{CourseID: course.ID, Title: "Module"}
	require.NoError(t, f.db.Create(&module).Error)
	require.NoError(t, f.db.Create(&model.ModuleSkill{ModuleID: module.ID, SkillID: skillID}).Error)
	return course.ID, module.ID
}

func TestBuildPlanSelectsOnlySkillsBelowThreshold(t *testing.T) {
	f := newStudyPlanFixture(t)

	weakID := f.addSkill(t, "Neural Networks", 1, 30)
	f.addSkill(t, "Python Basics", 1, 90)
	courseID, moduleID := f.addTeachingModule(t, weakID)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, weakID, recs[0].SkillID)
	assert.Equal(t, "Neural Networks", recs[0].SkillName)
	assert.Equal(t, 30, recs[0].CurrentScore)
	assert.Equal(t, []repository.ModuleRef{{CourseID: courseID, ModuleID: moduleID}}, recs[0].CandidateModules)
}

func TestBuildPlanScoreAtThresholdIsExcluded(t *testing.T) {
	f := newStudyPlanFixture(t)

	f.addSkill(t, "Linear Algebra", 1, DefaultProficiencyThreshold)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestBuildPlanOrdersWeakestFirst(t *testing.T) {
	f := newStudyPlanFixture(t)

	f.addSkill(t, "B Skill", 1, 40)
	f.addSkill(t, "A Skill", 1, 40)
	f.addSkill(t, "C Skill", 1, 10)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "C Skill", recs[0].SkillName)
	assert.Equal(t, "A Skill", recs[1].SkillName)
	assert.Equal(t, "B Skill", recs[2].SkillName)
}

func TestBuildPlanReportsGapSkillWithoutModules(t *testing.T) {
	f := newStudyPlanFixture(t)

	f.addSkill(t, "Prompt Engineering", 1, 5)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	// 内容缺口技能照常上报，候选单元是空列表而不是 null
	assert.NotNil(t, recs[0].CandidateModules)
	assert.Empty(t, recs[0].CandidateModules)
}

func TestBuildPlanCustomThresholdOverridesDefault(t *testing.T) {
	f := newStudyPlanFixture(t)

	f.addSkill(t, "Neural Networks", 1, 30)
	f.addSkill(t, "Python Basics", 1, 90)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 95)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestBuildPlanNoProficienciesIsEmptyPlan(t *testing.T) {
	f := newStudyPlanFixture(t)

	recs, err := f.svc.BuildPlan(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestSetDefaultThresholdFallsBackOnInvalidValue(t *testing.T) {
	f := newStudyPlanFixture(t)

	f.svc.SetDefaultThreshold(80)
	assert.Equal(t, 80, f.svc.DefaultThreshold())

	f.svc.SetDefaultThreshold(0)
	assert.Equal(t, DefaultProficiencyThreshold, f.svc.DefaultThreshold())
}
