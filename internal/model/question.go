package model

import (
	"encoding/json"

	"childwell_backend/internal/insight"
)

// AssessmentQuestion 评估题目，issueWeightages/选项取值以 JSON 列存储
// swagger:model AssessmentQuestion
type AssessmentQuestion struct {
	UUIDBase
	Text            string          `gorm:"type:text;not null" json:"text"`
	IssueWeightages json.RawMessage `gorm:"type:json" json:"issueWeightages"`
	RatingMin       *float64        `json:"ratingMin,omitempty"`
	RatingMax       *float64        `json:"ratingMax,omitempty"`
	OptionValues    json.RawMessage `gorm:"type:json" json:"optionValues,omitempty"`
	Order           int             `gorm:"default:0" json:"order"`
	Active          bool            `gorm:"default:true" json:"active"`
}

func (AssessmentQuestion) TableName() string {
	return "assessment_questions"
}

// ToInsight 转成引擎侧的纯值对象
func (q *AssessmentQuestion) ToInsight() (insight.Question, error) {
	out := insight.Question{ID: q.ID}

	if len(q.IssueWeightages) > 0 {
		if err := json.Unmarshal(q.IssueWeightages, &out.IssueWeightages); err != nil {
			return out, err
		}
	}
	if len(q.OptionValues) > 0 {
		if err := json.Unmarshal(q.OptionValues, &out.OptionValues); err != nil {
			return out, err
		}
	}
	if q.RatingMin != nil && q.RatingMax != nil {
		out.RatingScale = &insight.RatingScale{Min: *q.RatingMin, Max: *q.RatingMax}
	}
	return out, nil
}
