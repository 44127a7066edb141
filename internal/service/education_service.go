package service

import (
	"childwell_backend/internal/insight"
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// EducationService 成绩记录与学习建议。每次录入成绩后，
// 在同一事务内整表重建该儿童的学习建议。
type EducationService struct {
	EducationRepo *repository.EducationRepository
	Dashboard     *DashboardService
}

func NewEducationService(educationRepo *repository.EducationRepository, dashboard *DashboardService) *EducationService {
	return &EducationService{EducationRepo: educationRepo, Dashboard: dashboard}
}

type EducationRecordRequest struct {
	GradeYear string                `json:"gradeYear"`
	Subjects  []insight.SubjectMark `json:"subjects" binding:"required,min=1"`
}

// AddRecord 追加成绩记录并重建学习建议
func (s *EducationService) AddRecord(ctx context.Context, childID uint, req EducationRecordRequest) (*model.EducationRecord, error) {
	for _, sub := range req.Subjects {
		if sub.Marks < 0 || sub.Marks > 100 {
			return nil, &insight.ValidationError{Field: "subjects", Reason: fmt.Sprintf("marks for %s must be within [0,100]", sub.Subject)}
		}
	}

	subjects, err := json.Marshal(req.Subjects)
	if err != nil {
		return nil, err
	}
	record := &model.EducationRecord{
		ChildID:    childID,
		GradeYear:  req.GradeYear,
		Subjects:   subjects,
		RecordedAt: time.Now(),
	}

	existing, err := s.EducationRepo.ListRecords(childID)
	if err != nil {
		return nil, err
	}
	history := make([]insight.EducationRecord, 0, len(existing)+1)
	for i := range existing {
		rec, err := existing[i].ToInsight()
		if err != nil {
			return nil, err
		}
		history = append(history, rec)
	}
	newRec, err := record.ToInsight()
	if err != nil {
		return nil, err
	}
	history = append(history, newRec)

	suggestions := insight.GenerateStudySuggestions(history)
	rows := make([]model.StudySuggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		rows = append(rows, model.StudySuggestion{
			ChildID:  childID,
			Subject:  sg.Subject,
			Text:     sg.Text,
			Priority: string(sg.Priority),
			Type:     string(sg.Type),
		})
	}

	if err := s.EducationRepo.AppendAndReplaceSuggestions(record, rows); err != nil {
		return nil, err
	}
	s.Dashboard.InvalidateChild(ctx, childID)
	return record, nil
}

func (s *EducationService) ListRecords(childID uint) ([]model.EducationRecord, error) {
	return s.EducationRepo.ListRecords(childID)
}

// GetAnalysis 基于全部成绩历史计算学业分析，无记录时 hasData=false
func (s *EducationService) GetAnalysis(childID uint) (insight.PerformanceAnalysis, error) {
	records, err := s.EducationRepo.ListRecords(childID)
	if err != nil {
		return insight.PerformanceAnalysis{}, err
	}
	history := make([]insight.EducationRecord, 0, len(records))
	for i := range records {
		rec, err := records[i].ToInsight()
		if err != nil {
			return insight.PerformanceAnalysis{}, err
		}
		history = append(history, rec)
	}
	return insight.AnalyzePerformance(history), nil
}

func (s *EducationService) ListSuggestions(childID uint) ([]model.StudySuggestion, error) {
	return s.EducationRepo.ListSuggestions(childID)
}
