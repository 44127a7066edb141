package service

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"childwell_backend/pkg/logger"
	"childwell_backend/pkg/monitoring"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// AssessmentService 评估提交编排：加载题目 → 引擎评分 → 封存报告。
// 报告一经创建不可变，只追加进儿童的评估历史。
type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	QuestionRepo   *repository.QuestionRepository
	Engine         *insight.Engine
	Dashboard      *DashboardService
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	questionRepo *repository.QuestionRepository,
	engine *insight.Engine,
	dashboard *DashboardService,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo: assessmentRepo,
		QuestionRepo:   questionRepo,
		Engine:         engine,
		Dashboard:      dashboard,
	}
}

type SubmitAssessmentRequest struct {
	Method    string             `json:"method" binding:"required"`
	Responses []insight.Response `json:"responses" binding:"required"`
}

// SubmitAssessment 对指定儿童执行一次完整评估并持久化报告
func (s *AssessmentService) SubmitAssessment(ctx context.Context, childID, conductedBy uint, req SubmitAssessmentRequest) (*model.AssessmentResult, error) {
	ids := make([]string, 0, len(req.Responses))
	for _, r := range req.Responses {
		ids = append(ids, r.QuestionID)
	}
	rows, err := s.QuestionRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	questions := make([]insight.Question, 0, len(rows))
	for i := range rows {
		q, err := rows[i].ToInsight()
		if err != nil {
			return nil, fmt.Errorf("question %s is malformed: %w", rows[i].ID, err)
		}
		questions = append(questions, q)
	}

	report, err := s.Engine.Score(insight.AssessmentInput{
		Responses:   req.Responses,
		Questions:   questions,
		Method:      insight.ScoringMethod(req.Method),
		ConductedBy: fmt.Sprintf("%d", conductedBy),
	})
	if err != nil {
		return nil, err
	}

	result, err := model.NewAssessmentResult(childID, conductedBy, report)
	if err != nil {
		return nil, err
	}
	if err := s.AssessmentRepo.Create(result); err != nil {
		return nil, err
	}

	monitoring.AssessmentCounter.WithLabelValues(req.Method).Inc()
	s.Dashboard.InvalidateChild(ctx, childID)

	logger.Log.Info("assessment completed",
		zap.Uint("childId", childID),
		zap.String("assessmentId", result.ID),
		zap.String("method", req.Method),
		zap.Strings("primaryConcerns", report.PrimaryConcerns))
	return result, nil
}

func (s *AssessmentService) GetAssessment(id string) (*model.AssessmentResult, error) {
	return s.AssessmentRepo.FindByID(id)
}

func (s *AssessmentService) ListAssessments(childID uint, page, limit int) ([]model.AssessmentResult, int64, error) {
	return s.AssessmentRepo.ListByChild(childID, page, limit)
}

func (s *AssessmentService) LatestAssessment(childID uint) (*model.AssessmentResult, error) {
	return s.AssessmentRepo.LatestByChild(childID)
}
