package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(marks ...float64) EducationRecord {
	subjects := []string{"Mathematics", "Science", "English", "History"}
	r := EducationRecord{GradeYear: "Grade 5"}
	for i, m := range marks {
		r.Subjects = append(r.Subjects, SubjectMark{Subject: subjects[i%len(subjects)], Marks: m})
	}
	return r
}

func TestMarksToGPA(t *testing.T) {
	cases := map[float64]float64{
		95: 4.0,
		85: 3.0,
		75: 2.0,
		65: 1.0,
		55: 0.0,
	}
	for marks, want := range cases {
		assert.Equal(t, want, MarksToGPA(marks), "marks=%v", marks)
	}
}

func TestAnalyzePerformanceEmpty(t *testing.T) {
	a := AnalyzePerformance(nil)
	assert.False(t, a.HasData)
	assert.Equal(t, TrendStable, a.Trend)
	assert.Zero(t, a.CurrentAverage)
	assert.Zero(t, a.OverallGPA)
	assert.Nil(t, GenerateStudySuggestions(nil))
}

func TestAnalyzePerformanceImprovingTrend(t *testing.T) {
	// 三条记录均分 50、52、85：近期窗口均值远高于更早的记录 → improving
	records := []EducationRecord{
		record(50, 50),
		record(52, 52),
		record(80, 90),
	}

	a := AnalyzePerformance(records)
	require.True(t, a.HasData)
	assert.Equal(t, TrendImproving, a.Trend)
	assert.Equal(t, 85.0, a.CurrentAverage)
	assert.Greater(t, a.TrendStrength, 0.0)
	assert.LessOrEqual(t, a.TrendStrength, 1.0)
}

func TestAnalyzePerformanceDecliningTrend(t *testing.T) {
	records := []EducationRecord{
		record(90, 90),
		record(88, 92),
		record(60, 60),
	}
	a := AnalyzePerformance(records)
	assert.Equal(t, TrendDeclining, a.Trend)
	assert.Equal(t, 1.0, a.TrendStrength) // |差值|/10 封顶为 1
}

func TestSubjectsNeedingAttentionFromLatestRecord(t *testing.T) {
	records := []EducationRecord{
		record(40, 45), // 历史低分不应出现
		record(55, 90, 88),
	}
	a := AnalyzePerformance(records)
	assert.Equal(t, []string{"Mathematics"}, a.SubjectsNeedingAttention)
	assert.Equal(t, []string{"Science", "English"}, a.TopPerformingSubjects)
}

func TestConsistencyScore(t *testing.T) {
	// 全部相同 → 标准差 0 → 100
	a := AnalyzePerformance([]EducationRecord{record(70, 70, 70)})
	assert.Equal(t, 100.0, a.ConsistencyScore)

	// 极端分散时下限为 0
	b := AnalyzePerformance([]EducationRecord{{
		GradeYear: "Grade 5",
		Subjects: []SubjectMark{
			{Subject: "A", Marks: 0}, {Subject: "B", Marks: 100},
			{Subject: "C", Marks: 0}, {Subject: "D", Marks: 100},
		},
	}})
	assert.GreaterOrEqual(t, b.ConsistencyScore, 0.0)
}

func TestGenerateStudySuggestions(t *testing.T) {
	records := []EducationRecord{
		record(90, 90),
		record(88, 92),
		record(55, 90, 40),
	}

	suggestions := GenerateStudySuggestions(records)
	require.NotEmpty(t, suggestions)

	// 优先级严格非增
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t,
			suggestions[i-1].Priority.Weight(),
			suggestions[i].Priority.Weight())
	}

	// 最新记录的低分科目各产生一条 high 建议
	var weak []string
	for _, s := range suggestions {
		if s.Type == SuggestionPerformance {
			assert.Equal(t, PriorityHigh, s.Priority)
			weak = append(weak, s.Subject)
		}
	}
	assert.Equal(t, []string{"Mathematics", "English"}, weak)

	// 强弱科目并存 → strategic 建议
	var hasStrategic bool
	for _, s := range suggestions {
		if s.Type == SuggestionStrategic {
			hasStrategic = true
		}
	}
	assert.True(t, hasStrategic)
}

func TestGenerateStudySuggestionsHighGPA(t *testing.T) {
	records := []EducationRecord{record(95, 92), record(93, 96)}
	suggestions := GenerateStudySuggestions(records)

	var hasAdvanced bool
	for _, s := range suggestions {
		if s.Type == SuggestionStrategic && s.Priority == PriorityLow {
			hasAdvanced = true
		}
	}
	assert.True(t, hasAdvanced, "GPA ≥ 3.5 should yield an advanced-learning suggestion")
}

func TestGenerateStudySuggestionsIdempotent(t *testing.T) {
	records := []EducationRecord{
		record(50, 50),
		record(52, 52),
		record(80, 90),
	}
	first := GenerateStudySuggestions(records)
	second := GenerateStudySuggestions(records)
	assert.Equal(t, first, second)
}
