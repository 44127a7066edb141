package insight

import (
	"fmt"
	"time"
)

// ScoringMethod 评分方法
type ScoringMethod string

const (
	MethodWeightedAverage   ScoringMethod = "weighted_average"
	MethodTScoreNonWeighted ScoringMethod = "t_score_non_weighted"
	MethodTScoreWeighted    ScoringMethod = "t_score_weighted"
)

func (m ScoringMethod) Valid() bool {
	switch m {
	case MethodWeightedAverage, MethodTScoreNonWeighted, MethodTScoreWeighted:
		return true
	}
	return false
}

// Severity 单项问题的严重程度分级
type Severity string

const (
	SeverityNormal     Severity = "normal"
	SeverityBorderline Severity = "borderline"
	SeverityClinical   Severity = "clinical"
)

// Priority 建议优先级，权重用于排序
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Weight() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IssueWeightage 题目对某一问题维度的贡献权重（0-100）
type IssueWeightage struct {
	IssueID   string  `json:"issueId"`
	IssueName string  `json:"issueName"`
	Weightage float64 `json:"weightage"`
}

// RatingScale 数值题的量表范围
type RatingScale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Question 评估题目定义，由题库提供
type Question struct {
	ID              string             `json:"id"`
	IssueWeightages []IssueWeightage   `json:"issueWeightages"`
	RatingScale     *RatingScale       `json:"ratingScale,omitempty"`
	OptionValues    map[string]float64 `json:"optionValues,omitempty"`
}

// Response 单题作答，数值或选项二选一
type Response struct {
	QuestionID string   `json:"questionId"`
	Value      *float64 `json:"value,omitempty"`
	Option     string   `json:"option,omitempty"`
}

// ProfessionalReferral 专业转介联系信息
type ProfessionalReferral struct {
	Specialty string `json:"specialty"`
	Name      string `json:"name"`
	Contact   string `json:"contact"`
	Note      string `json:"note,omitempty"`
}

// IssueResult 单个问题维度的评分结果
type IssueResult struct {
	IssueID             string                `json:"issueId"`
	IssueName           string                `json:"issueName"`
	Score               float64               `json:"score"`
	NormalizedScore     float64               `json:"normalizedScore"`
	TScore              *float64              `json:"tScore,omitempty"`
	Severity            Severity              `json:"severity"`
	RecommendedCourseID string                `json:"recommendedCourseId,omitempty"`
	Referral            *ProfessionalReferral `json:"professionalReferral,omitempty"`
}

// AssessmentRecommendation 评估报告中的建议条目
type AssessmentRecommendation struct {
	Category string   `json:"category"`
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
}

// AssessmentMetadata 评估元数据
type AssessmentMetadata struct {
	TotalQuestions int      `json:"totalQuestions"`
	Confidence     float64  `json:"confidence"`
	RiskIndicators []string `json:"riskIndicators"`
}

// AssessmentResult 一次提交生成的完整评估报告，创建后不可变
type AssessmentResult struct {
	AssessmentID    string                     `json:"assessmentId"`
	Method          ScoringMethod              `json:"method"`
	AssessmentDate  time.Time                  `json:"assessmentDate"`
	ConductedBy     string                     `json:"conductedBy"`
	Issues          []IssueResult              `json:"issues"`
	PrimaryConcerns []string                   `json:"primaryConcerns"`
	OverallSummary  string                     `json:"overallSummary"`
	Recommendations []AssessmentRecommendation `json:"recommendations"`
	Metadata        AssessmentMetadata         `json:"metadata"`
}

// ValidationError 配置或输入错误，直接返回给调用方，评估不会创建
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
