package service

import (
	"context"
	"testing"

	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionBankRejectsNonQuizLesson(t *testing.T) {
	lesson := &model.Lesson{ContentType: model.LessonText, Content: "plain text"}

	_, err := ParseQuestionBank(lesson)
	assert.ErrorIs(t, err, util.ErrInvalidQuizFormat)
}

func TestParseQuestionBankRejectsEmptyContent(t *testing.T) {
	lesson := &model.Lesson{ContentType: model.LessonQuiz, Content: ""}

	_, err := ParseQuestionBank(lesson)
	assert.ErrorIs(t, err, util.ErrInvalidQuizFormat)
}

func TestParseQuestionBankRejectsUndecodableContent(t *testing.T) {
	lesson := &model.Lesson{ContentType: model.LessonQuiz, Content: "{not json"}

	_, err := ParseQuestionBank(lesson)
	assert.ErrorIs(t, err, util.ErrInvalidQuizFormat)
}

func TestParseQuestionBankMissingQuestionsIsEmptyBank(t *testing.T) {
	for _, content := range []string{`{}`, `{"questions": []}`, `{"title": "quiz"}`} {
		lesson := &model.Lesson{ContentType: model.LessonQuiz, Content: content}

		questions, err := ParseQuestionBank(lesson)
		require.NoError(t, err, content)
		assert.Empty(t, questions, content)
	}
}

func TestParseQuestionBankNumericAndStringIDsEquivalent(t *testing.T) {
	lesson := &model.Lesson{
		ContentType: model.LessonQuiz,
		Content:     `{"questions": [{"id": 7, "correctAnswer": "3", "skill_ids": [1]}]}`,
	}

	questions, err := ParseQuestionBank(lesson)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, "7", questions[0].ID)
	assert.Equal(t, "3", questions[0].CorrectAnswerID)
}

func TestParseQuestionBankDropsMalformedSkillTags(t *testing.T) {
	lesson := &model.Lesson{
		ContentType: model.LessonQuiz,
		Content:     `{"questions": [{"id": "q1", "correctAnswer": "a", "skill_ids": [1, "2", 0, -3, "abc", 1.5, null]}]}`,
	}

	questions, err := ParseQuestionBank(lesson)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, []uint{1, 2}, questions[0].SkillIDs)
}

func TestGradeZeroQuestionsScoresZero(t *testing.T) {
	overall, perSkill := Grade(nil, []Answer{{QuestionID: "q1", SelectedOptionID: "a"}})

	assert.Equal(t, 0.0, overall)
	assert.Empty(t, perSkill)
}

func TestGradeIgnoresUnmatchedAnswers(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a", SkillIDs: []uint{1}},
	}
	answers := []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "ghost", SelectedOptionID: "a"},
	}

	overall, perSkill := Grade(questions, answers)

	assert.Equal(t, 100.0, overall)
	assert.Equal(t, map[uint]float64{1: 100.0}, perSkill)
}

func TestGradeOverallAndPerSkill(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a", SkillIDs: []uint{1}},
		{ID: "q2", CorrectAnswerID: "b", SkillIDs: []uint{1, 2}},
	}
	answers := []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q2", SelectedOptionID: "c"},
	}

	overall, perSkill := Grade(questions, answers)

	assert.Equal(t, 50.0, overall)
	assert.Equal(t, map[uint]float64{1: 50.0, 2: 0.0}, perSkill)
}

func TestGradeDuplicateAnswersCountQuestionOnce(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a", SkillIDs: []uint{1}},
	}
	answers := []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q1", SelectedOptionID: "a"},
	}

	overall, perSkill := Grade(questions, answers)

	// 重复提交同一题不能把百分比推过 100
	assert.Equal(t, 100.0, overall)
	assert.Equal(t, map[uint]float64{1: 100.0}, perSkill)
}

func TestGradeLastAnswerForQuestionWins(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a", SkillIDs: []uint{1}},
	}

	overall, perSkill := Grade(questions, []Answer{
		{QuestionID: "q1", SelectedOptionID: "wrong"},
		{QuestionID: "q1", SelectedOptionID: "a"},
	})
	assert.Equal(t, 100.0, overall)
	assert.Equal(t, map[uint]float64{1: 100.0}, perSkill)

	overall, perSkill = Grade(questions, []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q1", SelectedOptionID: "wrong"},
	})
	assert.Equal(t, 0.0, overall)
	assert.Equal(t, map[uint]float64{1: 0.0}, perSkill)
}

func TestGradeMoreCorrectAnswersNeverLowerOverall(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a"},
		{ID: "q2", CorrectAnswerID: "b"},
		{ID: "q3", CorrectAnswerID: "c"},
	}

	answers := []Answer{{QuestionID: "q1", SelectedOptionID: "x"}}
	prev, _ := Grade(questions, answers)

	for _, extra := range []Answer{
		{QuestionID: "q2", SelectedOptionID: "b"},
		{QuestionID: "q3", SelectedOptionID: "c"},
	} {
		answers = append(answers, extra)
		overall, _ := Grade(questions, answers)
		assert.GreaterOrEqual(t, overall, prev)
		prev = overall
	}
}

func TestGradeUnansweredQuestionCountsAgainstOverallOnly(t *testing.T) {
	questions := []Question{
		{ID: "q1", CorrectAnswerID: "a", SkillIDs: []uint{1}},
		{ID: "q2", CorrectAnswerID: "b", SkillIDs: []uint{2}},
	}
	answers := []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
	}

	overall, perSkill := Grade(questions, answers)

	// 未作答的题只拉低总分，不给它的技能记任何结果
	assert.Equal(t, 50.0, overall)
	assert.Equal(t, map[uint]float64{1: 100.0}, perSkill)
}

func newQuizService(t *testing.T) (*QuizService, *repository.ProficiencyRepository, *repository.LessonRepository) {
	db := newTestDB(t)
	lessonRepo := repository.NewLessonRepository(db)
	profRepo := repository.NewProficiencyRepository(db)
	return NewQuizService(lessonRepo, profRepo, nil), profRepo, lessonRepo
}

func createQuizLesson(t *testing.T, db *repository.LessonRepository, content string) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		ModuleID:    1,
		Title:       "Checkpoint Quiz",
		ContentType: model.LessonQuiz,
		Content:     content,
	}
	require.NoError(t, db.Create(lesson))
	return lesson
}

func TestSubmitQuizGradesAndUpsertsProficiency(t *testing.T) {
	svc, profRepo, lessonRepo := newQuizService(t)

	lesson := createQuizLesson(t, lessonRepo, `{
		"questions": [
			{"id": "q1", "correctAnswer": "a", "skill_ids": [1]},
			{"id": "q2", "correctAnswer": "b", "skill_ids": [1, 2]}
		]
	}`)

	result, err := svc.SubmitQuiz(context.Background(), 9, lesson.ID, []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q2", SelectedOptionID: "wrong"},
	})
	require.NoError(t, err)

	assert.Equal(t, lesson.ID, result.LessonID)
	assert.Equal(t, 50.0, result.OverallScore)
	assert.Equal(t, map[uint]float64{1: 50.0, 2: 0.0}, result.ScorePerSkill)

	skill1, err := profRepo.Get(9, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, skill1.ProficiencyScore)

	skill2, err := profRepo.Get(9, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, skill2.ProficiencyScore)
}

func TestSubmitQuizRoundsStoredScore(t *testing.T) {
	svc, profRepo, lessonRepo := newQuizService(t)

	lesson := createQuizLesson(t, lessonRepo, `{
		"questions": [
			{"id": "q1", "correctAnswer": "a", "skill_ids": [1]},
			{"id": "q2", "correctAnswer": "a", "skill_ids": [1]},
			{"id": "q3", "correctAnswer": "a", "skill_ids": [1]}
		]
	}`)

	result, err := svc.SubmitQuiz(context.Background(), 9, lesson.ID, []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
		{QuestionID: "q2", SelectedOptionID: "a"},
		{QuestionID: "q3", SelectedOptionID: "x"},
	})
	require.NoError(t, err)

	assert.Equal(t, 66.67, result.OverallScore)
	assert.Equal(t, 66.67, result.ScorePerSkill[1])

	stored, err := profRepo.Get(9, 1)
	require.NoError(t, err)
	assert.Equal(t, 67, stored.ProficiencyScore)
}

func TestSubmitQuizInvalidContentHasNoSideEffects(t *testing.T) {
	svc, profRepo, lessonRepo := newQuizService(t)

	lesson := createQuizLesson(t, lessonRepo, "broken{")

	_, err := svc.SubmitQuiz(context.Background(), 9, lesson.ID, []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuizFormat)

	rows, err := profRepo.ListForUser(9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSubmitQuizUntaggedQuestionsOmitScorePerSkill(t *testing.T) {
	svc, profRepo, lessonRepo := newQuizService(t)

	lesson := createQuizLesson(t, lessonRepo, `{
		"questions": [{"id": "q1", "correctAnswer": "a"}]
	}`)

	result, err := svc.SubmitQuiz(context.Background(), 9, lesson.ID, []Answer{
		{QuestionID: "q1", SelectedOptionID: "a"},
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.OverallScore)
	assert.Nil(t, result.ScorePerSkill)

	rows, err := profRepo.ListForUser(9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
