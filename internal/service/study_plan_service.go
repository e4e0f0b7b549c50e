package service

import (
	"cognilab_backend/internal/repository"
	"cognilab_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultProficiencyThreshold 熟练度低于该值的技能进入学习计划
const DefaultProficiencyThreshold = 60

const studyPlanCacheTTL = 24 * time.Hour

func studyPlanCacheKey(userID uint) string {
	return fmt.Sprintf("study_plan:%d", userID)
}

// Recommendation 学习计划中的一条建议：一个薄弱技能和教授它的教学单元。
// 没有任何单元教授该技能时 CandidateModules 为空列表，技能本身照常上报。
type Recommendation struct {
	SkillID          uint                   `json:"skill_id"`
	SkillName        string                 `json:"skill_name"`
	CurrentScore     int                    `json:"current_score"`
	CandidateModules []repository.ModuleRef `json:"candidate_modules"`
}

type StudyPlanService struct {
	ProficiencyRepo *repository.ProficiencyRepository
	SkillRepo       *repository.SkillRepository
	Redis           *redis.Client

	mu        sync.RWMutex
	threshold int
}

func NewStudyPlanService(proficiencyRepo *repository.ProficiencyRepository, skillRepo *repository.SkillRepository, rdb *redis.Client, threshold int) *StudyPlanService {
	if threshold <= 0 {
		threshold = DefaultProficiencyThreshold
	}
	return &StudyPlanService{
		ProficiencyRepo: proficiencyRepo,
		SkillRepo:       skillRepo,
		Redis:           rdb,
		threshold:       threshold,
	}
}

// DefaultThreshold 当前生效的默认阈值（可被配置热更新）
func (s *StudyPlanService) DefaultThreshold() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.threshold
}

func (s *StudyPlanService) SetDefaultThreshold(threshold int) {
	if threshold <= 0 {
		threshold = DefaultProficiencyThreshold
	}
	s.mu.Lock()
	s.threshold = threshold
	s.mu.Unlock()
}

// BuildPlan 生成学习计划：取用户全部熟练度（已按最弱在前排序），
// 选出低于阈值的技能并为每个技能反查教学单元。排序即推荐排名，
// 不再按教学单元数量等启发式重排。threshold <= 0 时用默认阈值。
func (s *StudyPlanService) BuildPlan(ctx context.Context, userID uint, threshold int) ([]Recommendation, error) {
	usingDefault := threshold <= 0
	if usingDefault {
		threshold = s.DefaultThreshold()
	}

	// 只缓存默认阈值的计划，自定义阈值直接现算
	if usingDefault && s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, studyPlanCacheKey(userID)).Result(); err == nil {
			var recs []Recommendation
			if err := json.Unmarshal([]byte(cached), &recs); err == nil {
				return recs, nil
			}
		}
	}

	rows, err := s.ProficiencyRepo.ListForUser(userID)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0)
	for _, row := range rows {
		if row.ProficiencyScore >= threshold {
			continue
		}

		refs, err := s.SkillRepo.TeachersOfSkill(row.SkillID)
		if err != nil {
			return nil, err
		}
		if refs == nil {
			refs = []repository.ModuleRef{}
		}

		name := ""
		if row.Skill != nil {
			name = row.Skill.Name
		}

		recs = append(recs, Recommendation{
			SkillID:          row.SkillID,
			SkillName:        name,
			CurrentScore:     row.ProficiencyScore,
			CandidateModules: refs,
		})
	}

	if usingDefault && s.Redis != nil {
		if data, err := json.Marshal(recs); err == nil {
			if err := s.Redis.Set(ctx, studyPlanCacheKey(userID), data, studyPlanCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache study plan",
					zap.Uint("userId", userID),
					zap.Error(err),
				)
			}
		}
	}

	return recs, nil
}
