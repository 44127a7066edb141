package model

import (
	"encoding/json"
	"time"

	"childwell_backend/internal/insight"
)

// EducationRecord 一次成绩录入，只追加，按录入顺序即时间顺序
// swagger:model EducationRecord
type EducationRecord struct {
	BaseModel
	ChildID    uint            `gorm:"index;not null" json:"childId"`
	GradeYear  string          `gorm:"size:50" json:"gradeYear"`
	Subjects   json.RawMessage `gorm:"type:json;not null" json:"subjects"`
	RecordedAt time.Time       `json:"recordedAt"`
}

func (EducationRecord) TableName() string {
	return "education_records"
}

func (r *EducationRecord) ToInsight() (insight.EducationRecord, error) {
	out := insight.EducationRecord{GradeYear: r.GradeYear, RecordedAt: r.RecordedAt}
	err := json.Unmarshal(r.Subjects, &out.Subjects)
	return out, err
}

// StudySuggestion 学习建议。每次新增成绩记录后整表替换，
// 行顺序即生成顺序（已按优先级降序）。
// swagger:model StudySuggestion
type StudySuggestion struct {
	BaseModel
	ChildID  uint   `gorm:"index;not null" json:"childId"`
	Subject  string `gorm:"size:100" json:"subject,omitempty"`
	Text     string `gorm:"type:text;not null" json:"suggestion"`
	Priority string `gorm:"size:20;not null" json:"priority"`
	Type     string `gorm:"size:20;not null" json:"type"`
}

func (StudySuggestion) TableName() string {
	return "study_suggestions"
}
