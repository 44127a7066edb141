package service

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"childwell_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardService 聚合单个儿童的最新评估、学业分析、营养概况，
// 结果写入 Redis 缓存，任何新记录落库后失效重建。
type DashboardService struct {
	AssessmentRepo *repository.AssessmentRepository
	EducationRepo  *repository.EducationRepository
	NutritionRepo  *repository.NutritionRepository
	Redis          *redis.Client
	CacheTTL       time.Duration
}

func NewDashboardService(
	assessmentRepo *repository.AssessmentRepository,
	educationRepo *repository.EducationRepository,
	nutritionRepo *repository.NutritionRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &DashboardService{
		AssessmentRepo: assessmentRepo,
		EducationRepo:  educationRepo,
		NutritionRepo:  nutritionRepo,
		Redis:          rdb,
		CacheTTL:       cacheTTL,
	}
}

// ChildDashboard 儿童健康总览
type ChildDashboard struct {
	ChildID          uint                        `json:"childId"`
	LatestAssessment *model.AssessmentResult     `json:"latestAssessment,omitempty"`
	Education        insight.PerformanceAnalysis `json:"education"`
	Nutrition        insight.NutritionSummary    `json:"nutrition"`
	GeneratedAt      time.Time                   `json:"generatedAt"`
}

func dashboardCacheKey(childID uint) string {
	return fmt.Sprintf("dashboard:child:%d", childID)
}

func (s *DashboardService) GetChildDashboard(ctx context.Context, childID uint) (*ChildDashboard, error) {
	key := dashboardCacheKey(childID)
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			var dashboard ChildDashboard
			if err := json.Unmarshal([]byte(cached), &dashboard); err == nil {
				return &dashboard, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("dashboard cache read failed", zap.Uint("childId", childID), zap.Error(err))
		}
	}

	dashboard, err := s.buildDashboard(childID)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		payload, err := json.Marshal(dashboard)
		if err == nil {
			if err := s.Redis.Set(ctx, key, payload, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("dashboard cache write failed", zap.Uint("childId", childID), zap.Error(err))
			}
		}
	}
	return dashboard, nil
}

func (s *DashboardService) buildDashboard(childID uint) (*ChildDashboard, error) {
	dashboard := &ChildDashboard{ChildID: childID, GeneratedAt: time.Now()}

	latest, err := s.AssessmentRepo.LatestByChild(childID)
	if err == nil {
		dashboard.LatestAssessment = latest
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	eduRecords, err := s.EducationRepo.ListRecords(childID)
	if err != nil {
		return nil, err
	}
	insightEdu := make([]insight.EducationRecord, 0, len(eduRecords))
	for i := range eduRecords {
		rec, err := eduRecords[i].ToInsight()
		if err != nil {
			return nil, err
		}
		insightEdu = append(insightEdu, rec)
	}
	dashboard.Education = insight.AnalyzePerformance(insightEdu)

	nutRecords, err := s.NutritionRepo.ListRecords(childID)
	if err != nil {
		return nil, err
	}
	insightNut := make([]insight.NutritionRecord, 0, len(nutRecords))
	for i := range nutRecords {
		insightNut = append(insightNut, nutRecords[i].ToInsight())
	}
	dashboard.Nutrition = insight.AnalyzeNutrition(insightNut)

	return dashboard, nil
}

// InvalidateChild 新评估/成绩/营养记录落库后调用，下次读取重建总览
func (s *DashboardService) InvalidateChild(ctx context.Context, childID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, dashboardCacheKey(childID)).Err(); err != nil {
		logger.Log.Warn("dashboard cache invalidation failed", zap.Uint("childId", childID), zap.Error(err))
	}
}
