package service

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"childwell_backend/pkg/logger"
	"encoding/json"

	"go.uber.org/zap"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type QuestionRequest struct {
	Text            string                   `json:"text" binding:"required"`
	IssueWeightages []insight.IssueWeightage `json:"issueWeightages" binding:"required"`
	RatingMin       *float64                 `json:"ratingMin"`
	RatingMax       *float64                 `json:"ratingMax"`
	OptionValues    map[string]float64       `json:"optionValues"`
	Order           int                      `json:"order"`
	Active          *bool                    `json:"active"`
}

// warnOnWeightageSum 权重和超过 100 是配置告警而不是错误
func warnOnWeightageSum(questionID string, ws []insight.IssueWeightage) {
	var sum float64
	for _, w := range ws {
		sum += w.Weightage
	}
	if sum > 100 {
		logger.Log.Warn("question issue weightages sum above 100",
			zap.String("questionId", questionID),
			zap.Float64("sum", sum))
	}
}

func (s *QuestionService) buildModel(q *model.AssessmentQuestion, req QuestionRequest) error {
	weightages, err := json.Marshal(req.IssueWeightages)
	if err != nil {
		return err
	}
	q.Text = req.Text
	q.IssueWeightages = weightages
	q.RatingMin = req.RatingMin
	q.RatingMax = req.RatingMax
	q.Order = req.Order
	if req.Active != nil {
		q.Active = *req.Active
	}

	if req.OptionValues != nil {
		options, err := json.Marshal(req.OptionValues)
		if err != nil {
			return err
		}
		q.OptionValues = options
	}
	return nil
}

func (s *QuestionService) CreateQuestion(req QuestionRequest) (*model.AssessmentQuestion, error) {
	q := &model.AssessmentQuestion{Active: true}
	if err := s.buildModel(q, req); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	warnOnWeightageSum(q.ID, req.IssueWeightages)
	return q, nil
}

func (s *QuestionService) UpdateQuestion(id string, req QuestionRequest) (*model.AssessmentQuestion, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.buildModel(q, req); err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	warnOnWeightageSum(q.ID, req.IssueWeightages)
	return q, nil
}

func (s *QuestionService) GetQuestion(id string) (*model.AssessmentQuestion, error) {
	return s.QuestionRepo.FindByID(id)
}

func (s *QuestionService) ListQuestions(page, limit int) ([]model.AssessmentQuestion, int64, error) {
	return s.QuestionRepo.List(page, limit)
}

func (s *QuestionService) ListActiveQuestions() ([]model.AssessmentQuestion, error) {
	return s.QuestionRepo.ListActive()
}

func (s *QuestionService) DeleteQuestion(id string) error {
	return s.QuestionRepo.Delete(id)
}
