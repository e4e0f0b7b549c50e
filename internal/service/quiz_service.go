package service

import (
	"bytes"
	"cognilab_backend/internal/model"
	"cognilab_backend/internal/repository"
	"cognilab_backend/internal/util"
	"cognilab_backend/pkg/logger"
	"context"
	"encoding/json"
	"math"
	"strconv"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Question 评分过程中的临时结构，由课时内容解码得到，只活到本次评分结束
type Question struct {
	ID              string
	CorrectAnswerID string
	SkillIDs        []uint
}

// Answer 学生提交的单题作答，按字符串比较，不做模糊匹配
type Answer struct {
	QuestionID       string `json:"question_id" binding:"required"`
	SelectedOptionID string `json:"selected_option_id" binding:"required"`
}

// GradingResult 一次测验的评分结果。ScorePerSkill 为空表示没有任何技能
// 被命中的题目覆盖，与"所有技能得 0 分"是两回事
type GradingResult struct {
	LessonID      uint             `json:"lesson_id"`
	OverallScore  float64          `json:"overall_score"`
	ScorePerSkill map[uint]float64 `json:"score_per_skill,omitempty"`
}

type QuizService struct {
	LessonRepo      *repository.LessonRepository
	ProficiencyRepo *repository.ProficiencyRepository
	Redis           *redis.Client
}

func NewQuizService(lessonRepo *repository.LessonRepository, proficiencyRepo *repository.ProficiencyRepository, rdb *redis.Client) *QuizService {
	return &QuizService{
		LessonRepo:      lessonRepo,
		ProficiencyRepo: proficiencyRepo,
		Redis:           rdb,
	}
}

type rawQuestion struct {
	ID            interface{}   `json:"id"`
	CorrectAnswer interface{}   `json:"correctAnswer"`
	SkillIDs      []interface{} `json:"skill_ids"`
}

type rawQuizContent struct {
	Questions []rawQuestion `json:"questions"`
}

// ParseQuestionBank 解码课时内嵌的题库。课时不是测验、内容为空或整体
// 无法解码时返回 ErrInvalidQuizFormat；questions 字段缺失或为空不是错误，
// 返回空题库。题目上无法解析成技能 id 的标签逐个丢弃，不影响整卷。
func ParseQuestionBank(lesson *model.Lesson) ([]Question, error) {
	if lesson.ContentType != model.LessonQuiz || lesson.Content == "" {
		return nil, util.ErrInvalidQuizFormat
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(lesson.Content)))
	dec.UseNumber()

	var raw rawQuizContent
	if err := dec.Decode(&raw); err != nil {
		return nil, util.ErrInvalidQuizFormat
	}

	questions := make([]Question, 0, len(raw.Questions))
	for _, rq := range raw.Questions {
		q := Question{
			ID:              stringifyID(rq.ID),
			CorrectAnswerID: stringifyID(rq.CorrectAnswer),
		}
		for _, tag := range rq.SkillIDs {
			id, ok := coerceSkillID(tag)
			if !ok {
				// 单个技能标签坏了只丢这个标签，整卷继续
				logger.Log.Debug("dropping malformed skill tag",
					zap.Uint("lessonId", lesson.ID),
					zap.Any("tag", tag),
				)
				continue
			}
			q.SkillIDs = append(q.SkillIDs, id)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// stringifyID 把线上的题目/选项标识统一成字符串比较，数字和字符串等价
func stringifyID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func coerceSkillID(v interface{}) (uint, bool) {
	switch t := v.(type) {
	case json.Number:
		n, err := strconv.ParseUint(t.String(), 10, 32)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	case string:
		n, err := strconv.ParseUint(t, 10, 32)
		if err != nil || n == 0 {
			return 0, false
		}
		return uint(n), true
	default:
		return 0, false
	}
}

// Grade 对照题库给一次提交打分。提交里对不上题目的条目直接忽略，
// 既不算对也不算错，也不进入任何技能的统计。同一题的重复作答只按
// 最后一条计分，每道题至多贡献一次对错结果。
// 一道多技能题把同一个对错结果同时计入它的每个技能。
func Grade(questions []Question, answers []Answer) (float64, map[uint]float64) {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	selected := make(map[string]string, len(answers))
	for _, a := range answers {
		if _, ok := byID[a.QuestionID]; !ok {
			continue
		}
		selected[a.QuestionID] = a.SelectedOptionID
	}

	correctCount := 0
	skillOutcomes := make(map[uint][]bool)

	for _, q := range questions {
		sel, ok := selected[q.ID]
		if !ok {
			continue
		}
		correct := sel == q.CorrectAnswerID
		if correct {
			correctCount++
		}
		for _, skillID := range q.SkillIDs {
			skillOutcomes[skillID] = append(skillOutcomes[skillID], correct)
		}
	}

	// 零题测验约定得 0 分，而不是除零错误
	overall := 0.0
	if len(questions) > 0 {
		overall = round2(100 * float64(correctCount) / float64(len(questions)))
	}

	perSkill := make(map[uint]float64, len(skillOutcomes))
	for skillID, outcomes := range skillOutcomes {
		trueCount := 0
		for _, ok := range outcomes {
			if ok {
				trueCount++
			}
		}
		perSkill[skillID] = round2(100 * float64(trueCount) / float64(len(outcomes)))
	}

	return overall, perSkill
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SubmitQuiz 评分入口：解析题库、打分、把每个被覆盖技能的整数分
// 落到熟练度存储（评分的唯一副作用），最后让该用户的学习计划缓存失效
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, lessonID uint, answers []Answer) (*GradingResult, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestionBank(lesson)
	if err != nil {
		return nil, err
	}

	overall, perSkill := Grade(questions, answers)

	for skillID, score := range perSkill {
		if err := s.ProficiencyRepo.Upsert(userID, skillID, int(math.Round(score))); err != nil {
			return nil, err
		}
	}

	if len(perSkill) > 0 && s.Redis != nil {
		if err := s.Redis.Del(ctx, studyPlanCacheKey(userID)).Err(); err != nil {
			logger.Log.Warn("failed to invalidate study plan cache",
				zap.Uint("userId", userID),
				zap.Error(err),
			)
		}
	}

	result := &GradingResult{
		LessonID:     lessonID,
		OverallScore: overall,
	}
	if len(perSkill) > 0 {
		result.ScorePerSkill = perSkill
	}

	return result, nil
}
