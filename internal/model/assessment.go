package model

import (
	"encoding/json"
	"time"

	"childwell_backend/internal/insight"
)

// AssessmentResult 一次提交生成的评估报告，创建后不可变，
// 归属儿童的评估历史。结构化明细以 JSON 列存储。
// swagger:model AssessmentResult
type AssessmentResult struct {
	UUIDBase
	ChildID         uint            `gorm:"index;not null" json:"childId"`
	Method          string          `gorm:"size:40;not null" json:"method"`
	AssessmentDate  time.Time       `json:"assessmentDate"`
	ConductedBy     uint            `gorm:"index" json:"conductedBy"`
	Issues          json.RawMessage `gorm:"type:json" json:"issues"`
	PrimaryConcerns json.RawMessage `gorm:"type:json" json:"primaryConcerns"`
	OverallSummary  string          `gorm:"type:text" json:"overallSummary"`
	Recommendations json.RawMessage `gorm:"type:json" json:"recommendations"`
	Metadata        json.RawMessage `gorm:"type:json" json:"metadata"`
}

func (AssessmentResult) TableName() string {
	return "assessment_results"
}

// NewAssessmentResult 把引擎输出封存为持久化记录
func NewAssessmentResult(childID, conductedBy uint, r *insight.AssessmentResult) (*AssessmentResult, error) {
	issues, err := json.Marshal(r.Issues)
	if err != nil {
		return nil, err
	}
	concerns, err := json.Marshal(r.PrimaryConcerns)
	if err != nil {
		return nil, err
	}
	recs, err := json.Marshal(r.Recommendations)
	if err != nil {
		return nil, err
	}
	meta, err := json.Marshal(r.Metadata)
	if err != nil {
		return nil, err
	}

	return &AssessmentResult{
		UUIDBase:        UUIDBase{ID: r.AssessmentID},
		ChildID:         childID,
		Method:          string(r.Method),
		AssessmentDate:  r.AssessmentDate,
		ConductedBy:     conductedBy,
		Issues:          issues,
		PrimaryConcerns: concerns,
		OverallSummary:  r.OverallSummary,
		Recommendations: recs,
		Metadata:        meta,
	}, nil
}
