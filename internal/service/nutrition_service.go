package service

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"context"
	"time"
)

// NutritionService 营养记录与营养建议。每次录入记录后，
// 在同一事务内整表重建该儿童的营养建议。
type NutritionService struct {
	NutritionRepo *repository.NutritionRepository
	Dashboard     *DashboardService
}

func NewNutritionService(nutritionRepo *repository.NutritionRepository, dashboard *DashboardService) *NutritionService {
	return &NutritionService{NutritionRepo: nutritionRepo, Dashboard: dashboard}
}

type NutritionRecordRequest struct {
	HeightCm        float64   `json:"heightCm" binding:"required,gt=0,lte=250"`
	WeightKg        float64   `json:"weightKg" binding:"required,gt=0,lte=200"`
	MeasurementDate time.Time `json:"measurementDate"`

	EatsBreakfast       bool `json:"eatsBreakfast"`
	DrinksEnoughWater   bool `json:"drinksEnoughWater"`
	EatsFruitsDaily     bool `json:"eatsFruitsDaily"`
	EatsVegetablesDaily bool `json:"eatsVegetablesDaily"`
	LimitsJunkFood      bool `json:"limitsJunkFood"`
	RegularMealTimes    bool `json:"regularMealTimes"`
	EatsVariedDiet      bool `json:"eatsVariedDiet"`
	AvoidsSugaryDrinks  bool `json:"avoidsSugaryDrinks"`

	Notes string `json:"notes"`
}

// AddRecord 追加营养记录并重建营养建议
func (s *NutritionService) AddRecord(ctx context.Context, childID uint, req NutritionRecordRequest) (*model.NutritionRecord, error) {
	measuredAt := req.MeasurementDate
	if measuredAt.IsZero() {
		measuredAt = time.Now()
	}
	record := &model.NutritionRecord{
		ChildID:         childID,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		MeasurementDate: measuredAt,

		EatsBreakfast:       req.EatsBreakfast,
		DrinksEnoughWater:   req.DrinksEnoughWater,
		EatsFruitsDaily:     req.EatsFruitsDaily,
		EatsVegetablesDaily: req.EatsVegetablesDaily,
		LimitsJunkFood:      req.LimitsJunkFood,
		RegularMealTimes:    req.RegularMealTimes,
		EatsVariedDiet:      req.EatsVariedDiet,
		AvoidsSugaryDrinks:  req.AvoidsSugaryDrinks,

		Notes:      req.Notes,
		RecordedAt: time.Now(),
	}

	existing, err := s.NutritionRepo.ListRecords(childID)
	if err != nil {
		return nil, err
	}
	history := make([]insight.NutritionRecord, 0, len(existing)+1)
	for i := range existing {
		history = append(history, existing[i].ToInsight())
	}
	history = append(history, record.ToInsight())

	recs := insight.GenerateNutritionRecommendations(history)
	rows := make([]model.NutritionRecommendation, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, model.NutritionRecommendation{
			ChildID:    childID,
			Category:   string(rec.Category),
			Text:       rec.Text,
			Priority:   string(rec.Priority),
			TargetArea: rec.TargetArea,
		})
	}

	if err := s.NutritionRepo.AppendAndReplaceRecommendations(record, rows); err != nil {
		return nil, err
	}
	s.Dashboard.InvalidateChild(ctx, childID)
	return record, nil
}

func (s *NutritionService) ListRecords(childID uint) ([]model.NutritionRecord, error) {
	return s.NutritionRepo.ListRecords(childID)
}

// GetSummary 基于最新记录计算营养概况，无记录时 hasData=false
func (s *NutritionService) GetSummary(childID uint) (insight.NutritionSummary, error) {
	records, err := s.NutritionRepo.ListRecords(childID)
	if err != nil {
		return insight.NutritionSummary{}, err
	}
	history := make([]insight.NutritionRecord, 0, len(records))
	for i := range records {
		history = append(history, records[i].ToInsight())
	}
	return insight.AnalyzeNutrition(history), nil
}

func (s *NutritionService) ListRecommendations(childID uint) ([]model.NutritionRecommendation, error) {
	return s.NutritionRepo.ListRecommendations(childID)
}
