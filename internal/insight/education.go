package insight

import (
	"fmt"
	"math"
	"time"
)

// SubjectMark 单科成绩，满分 100
type SubjectMark struct {
	Subject string  `json:"subject"`
	Marks   float64 `json:"marks"`
}

// EducationRecord 一次成绩录入，追加后不再修改，按追加顺序即时间顺序
type EducationRecord struct {
	GradeYear  string        `json:"gradeYear"`
	Subjects   []SubjectMark `json:"subjects"`
	RecordedAt time.Time     `json:"recordedAt"`
}

// Trend 成绩走势
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// PerformanceAnalysis 学业表现分析结果。没有历史记录时 HasData 为 false，
// 调用方按该标志分支，而不是捕获错误。
type PerformanceAnalysis struct {
	HasData                  bool     `json:"hasData"`
	CurrentAverage           float64  `json:"currentAverage"`
	Trend                    Trend    `json:"trend"`
	TrendStrength            float64  `json:"trendStrength"`
	SubjectsNeedingAttention []string `json:"subjectsNeedingAttention"`
	TopPerformingSubjects    []string `json:"topPerformingSubjects"`
	ConsistencyScore         float64  `json:"consistencyScore"`
	OverallGPA               float64  `json:"overallGpa"`
}

// SuggestionType 学习建议类型
type SuggestionType string

const (
	SuggestionPerformance SuggestionType = "performance"
	SuggestionTrend       SuggestionType = "trend"
	SuggestionConsistency SuggestionType = "consistency"
	SuggestionStrategic   SuggestionType = "strategic"
)

// StudySuggestion 学习建议，每次新增成绩记录后整体重建
type StudySuggestion struct {
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"suggestion"`
	Priority Priority       `json:"priority"`
	Type     SuggestionType `json:"type"`
}

// AnalyzePerformance 计算学业走势、稳定性与 GPA。纯函数，O(records × subjects)。
func AnalyzePerformance(records []EducationRecord) PerformanceAnalysis {
	if len(records) == 0 {
		return PerformanceAnalysis{Trend: TrendStable}
	}

	averages := make([]float64, len(records))
	for i, r := range records {
		averages[i] = recordAverage(r)
	}

	latest := records[len(records)-1]
	analysis := PerformanceAnalysis{
		HasData:        true,
		CurrentAverage: round2(averages[len(averages)-1]),
		Trend:          TrendStable,
	}

	// 走势：最近窗口（最多 3 条，且至少留一条更早的记录作对照）对比更早记录的均值，
	// 差值 > +5 记 improving，< −5 记 declining。
	if len(averages) >= 2 {
		window := len(averages) - 1
		if window > 3 {
			window = 3
		}
		recent := mean(averages[len(averages)-window:])
		older := mean(averages[:len(averages)-window])
		diff := recent - older

		switch {
		case diff > 5:
			analysis.Trend = TrendImproving
		case diff < -5:
			analysis.Trend = TrendDeclining
		}
		analysis.TrendStrength = round2(math.Min(math.Abs(diff)/10, 1))
	}

	for _, s := range latest.Subjects {
		if s.Marks < 60 && len(analysis.SubjectsNeedingAttention) < 3 {
			analysis.SubjectsNeedingAttention = append(analysis.SubjectsNeedingAttention, s.Subject)
		}
		if s.Marks >= 85 && len(analysis.TopPerformingSubjects) < 3 {
			analysis.TopPerformingSubjects = append(analysis.TopPerformingSubjects, s.Subject)
		}
	}

	analysis.ConsistencyScore = round2(math.Max(0, 100-populationStdDev(marksOf(latest))))

	var gpaSum float64
	for _, avg := range averages {
		gpaSum += MarksToGPA(avg)
	}
	analysis.OverallGPA = round2(gpaSum / float64(len(averages)))

	return analysis
}

// MarksToGPA 百分制转 4.0 绩点，固定分段
func MarksToGPA(marks float64) float64 {
	switch {
	case marks >= 90:
		return 4.0
	case marks >= 80:
		return 3.0
	case marks >= 70:
		return 2.0
	case marks >= 60:
		return 1.0
	default:
		return 0.0
	}
}

var studyAdvice = []advisoryRule[PerformanceAnalysis, StudySuggestion]{
	{
		when: func(a PerformanceAnalysis) bool { return len(a.SubjectsNeedingAttention) > 0 },
		build: func(a PerformanceAnalysis) []StudySuggestion {
			out := make([]StudySuggestion, 0, len(a.SubjectsNeedingAttention))
			for _, subject := range a.SubjectsNeedingAttention {
				out = append(out, StudySuggestion{
					Subject:  subject,
					Text:     fmt.Sprintf("Marks in %s are below 60; schedule extra practice sessions and review fundamentals", subject),
					Priority: PriorityHigh,
					Type:     SuggestionPerformance,
				})
			}
			return out
		},
	},
	{
		when: func(a PerformanceAnalysis) bool { return a.Trend == TrendDeclining && a.TrendStrength > 0.3 },
		build: func(a PerformanceAnalysis) []StudySuggestion {
			return []StudySuggestion{{
				Text:     "Overall performance is declining; review the recent study routine and identify what changed",
				Priority: PriorityHigh,
				Type:     SuggestionTrend,
			}}
		},
	},
	{
		when: func(a PerformanceAnalysis) bool { return a.Trend == TrendImproving },
		build: func(a PerformanceAnalysis) []StudySuggestion {
			return []StudySuggestion{{
				Text:     "Performance is improving; keep up the current study habits",
				Priority: PriorityLow,
				Type:     SuggestionTrend,
			}}
		},
	},
	{
		when: func(a PerformanceAnalysis) bool { return a.HasData && a.ConsistencyScore < 60 },
		build: func(a PerformanceAnalysis) []StudySuggestion {
			return []StudySuggestion{{
				Text:     "Marks vary a lot between subjects; balance study time more evenly across all subjects",
				Priority: PriorityMedium,
				Type:     SuggestionConsistency,
			}}
		},
	},
	{
		when: func(a PerformanceAnalysis) bool {
			return len(a.TopPerformingSubjects) > 0 && len(a.SubjectsNeedingAttention) > 0
		},
		build: func(a PerformanceAnalysis) []StudySuggestion {
			return []StudySuggestion{{
				Text:     fmt.Sprintf("Apply the study techniques that work in %s to weaker subjects", a.TopPerformingSubjects[0]),
				Priority: PriorityMedium,
				Type:     SuggestionStrategic,
			}}
		},
	},
	{
		when: func(a PerformanceAnalysis) bool { return a.OverallGPA >= 3.5 },
		build: func(a PerformanceAnalysis) []StudySuggestion {
			return []StudySuggestion{{
				Text:     "Strong overall GPA; consider advanced learning material or enrichment activities",
				Priority: PriorityLow,
				Type:     SuggestionStrategic,
			}}
		},
	},
}

// GenerateStudySuggestions 规则级联生成学习建议，按优先级降序稳定排序。
// 每次新增成绩记录后整体重建，不做增量修补。
func GenerateStudySuggestions(records []EducationRecord) []StudySuggestion {
	analysis := AnalyzePerformance(records)
	if !analysis.HasData {
		return nil
	}
	suggestions := evalRules(analysis, studyAdvice)
	sortByPriority(suggestions, func(s StudySuggestion) Priority { return s.Priority })
	return suggestions
}

func recordAverage(r EducationRecord) float64 {
	return mean(marksOf(r))
}

func marksOf(r EducationRecord) []float64 {
	marks := make([]float64, len(r.Subjects))
	for i, s := range r.Subjects {
		marks[i] = s.Marks
	}
	return marks
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}
