package insight

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func anxietyQuestions() []Question {
	return []Question{
		{
			ID:              "q1",
			IssueWeightages: []IssueWeightage{{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 75}},
		},
		{
			ID:              "q2",
			IssueWeightages: []IssueWeightage{{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 25}},
		},
	}
}

func TestScoreWeightedAverage(t *testing.T) {
	e := NewEngine(nil, nil)

	// (80×75 + 40×25) / 100 = 70.0
	result, err := e.Score(AssessmentInput{
		Responses: []Response{
			{QuestionID: "q1", Value: f(80)},
			{QuestionID: "q2", Value: f(40)},
		},
		Questions:   anxietyQuestions(),
		Method:      MethodWeightedAverage,
		ConductedBy: "instructor-1",
	})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)

	issue := result.Issues[0]
	assert.Equal(t, "anxiety", issue.IssueID)
	assert.Equal(t, 70.0, issue.Score)
	assert.Nil(t, issue.TScore)
	assert.NotEmpty(t, result.AssessmentID)
	assert.Equal(t, "instructor-1", result.ConductedBy)
	assert.Equal(t, 2, result.Metadata.TotalQuestions)
}

func TestWeightedAverageScoreStaysInRange(t *testing.T) {
	e := NewEngine(nil, nil)

	cases := []struct {
		name    string
		answers []float64
	}{
		{"all minimum", []float64{0, 0}},
		{"all maximum", []float64{100, 100}},
		{"mixed", []float64{13.7, 91.2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := e.Score(AssessmentInput{
				Responses: []Response{
					{QuestionID: "q1", Value: f(tc.answers[0])},
					{QuestionID: "q2", Value: f(tc.answers[1])},
				},
				Questions: anxietyQuestions(),
				Method:    MethodWeightedAverage,
			})
			require.NoError(t, err)
			for _, is := range result.Issues {
				assert.GreaterOrEqual(t, is.Score, 0.0)
				assert.LessOrEqual(t, is.Score, 100.0)
			}
		})
	}
}

func TestWeightageSumOver100IsNotAnError(t *testing.T) {
	e := NewEngine(nil, nil)

	// 单题跨维度权重合计 150：仅记录告警，照常计分
	questions := []Question{
		{
			ID: "q1",
			IssueWeightages: []IssueWeightage{
				{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 80},
				{IssueID: "depression", IssueName: "Depression", Weightage: 70},
			},
		},
	}

	result, err := e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(60)}},
		Questions: questions,
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	require.Len(t, result.Issues, 2)
	for _, is := range result.Issues {
		assert.GreaterOrEqual(t, is.Score, 0.0)
		assert.LessOrEqual(t, is.Score, 100.0)
		// 加权均值按各维度自身权重归一，不受合计超额影响
		assert.Equal(t, 60.0, is.Score)
	}
}

func TestScoreTScoreMethods(t *testing.T) {
	e := NewEngine(nil, nil)

	// 常模 50/10：均值 80 → T = 50 + 10×(80−50)/10 = 80 → clinical
	result, err := e.Score(AssessmentInput{
		Responses: []Response{
			{QuestionID: "q1", Value: f(80)},
			{QuestionID: "q2", Value: f(80)},
		},
		Questions: anxietyQuestions(),
		Method:    MethodTScoreNonWeighted,
	})
	require.NoError(t, err)
	require.Len(t, result.Issues, 1)
	require.NotNil(t, result.Issues[0].TScore)
	assert.Equal(t, 80.0, *result.Issues[0].TScore)
	assert.Equal(t, SeverityClinical, result.Issues[0].Severity)
	assert.Contains(t, result.Metadata.RiskIndicators, "Anxiety")

	// 加权变体：权重 75/25，答案 80/40 → 加权均值 70 → T = 70 → clinical（≥70）
	result, err = e.Score(AssessmentInput{
		Responses: []Response{
			{QuestionID: "q1", Value: f(80)},
			{QuestionID: "q2", Value: f(40)},
		},
		Questions: anxietyQuestions(),
		Method:    MethodTScoreWeighted,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Issues[0].TScore)
	assert.Equal(t, 70.0, *result.Issues[0].TScore)
	assert.Equal(t, SeverityClinical, result.Issues[0].Severity)

	// T < 65 → normal
	result, err = e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(60)}},
		Questions: anxietyQuestions(),
		Method:    MethodTScoreNonWeighted,
	})
	require.NoError(t, err)
	assert.Equal(t, SeverityNormal, result.Issues[0].Severity)
}

func TestTScoreBandBoundaries(t *testing.T) {
	bands := DefaultTScoreBands
	assert.Equal(t, SeverityNormal, ClassifySeverity(64.99, bands))
	assert.Equal(t, SeverityBorderline, ClassifySeverity(65, bands))
	assert.Equal(t, SeverityBorderline, ClassifySeverity(69.99, bands))
	assert.Equal(t, SeverityClinical, ClassifySeverity(70, bands))
}

func TestReferralAttachedOnlyWhenElevated(t *testing.T) {
	e := NewEngine(nil, nil)

	result, err := e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(90)}},
		Questions: anxietyQuestions(),
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	issue := result.Issues[0]
	assert.Equal(t, SeverityClinical, issue.Severity)
	assert.Equal(t, "course-calm-foundations", issue.RecommendedCourseID)
	require.NotNil(t, issue.Referral)
	assert.Equal(t, "Child Psychologist", issue.Referral.Specialty)

	result, err = e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(20)}},
		Questions: anxietyQuestions(),
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	issue = result.Issues[0]
	assert.Equal(t, SeverityNormal, issue.Severity)
	assert.Empty(t, issue.RecommendedCourseID)
	assert.Nil(t, issue.Referral)
}

func TestScoreValidation(t *testing.T) {
	e := NewEngine(nil, nil)

	var vErr *ValidationError

	_, err := e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(50)}},
		Questions: anxietyQuestions(),
		Method:    "median_of_medians",
	})
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))

	_, err = e.Score(AssessmentInput{
		Questions: anxietyQuestions(),
		Method:    MethodWeightedAverage,
	})
	require.Error(t, err)
	assert.True(t, errors.As(err, &vErr))
}

func TestUnknownQuestionSkipped(t *testing.T) {
	e := NewEngine(nil, nil)

	result, err := e.Score(AssessmentInput{
		Responses: []Response{
			{QuestionID: "q1", Value: f(80)},
			{QuestionID: "ghost", Value: f(100)},
		},
		Questions: anxietyQuestions(),
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Metadata.TotalQuestions)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, 80.0, result.Issues[0].Score)
}

func TestConfidenceAndSummary(t *testing.T) {
	e := NewEngine(nil, nil)

	// 默认目录有 5 个维度，作答只覆盖 anxiety → confidence 0.2
	result, err := e.Score(AssessmentInput{
		Responses: []Response{{QuestionID: "q1", Value: f(30)}},
		Questions: anxietyQuestions(),
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.2, result.Metadata.Confidence)
	assert.Empty(t, result.PrimaryConcerns)
	assert.Equal(t, "No significant concerns identified", result.OverallSummary)
	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t, PriorityLow, result.Recommendations[0].Priority)
}

func TestPrimaryConcernsOrderedByScore(t *testing.T) {
	e := NewEngine(nil, nil)

	questions := []Question{
		{ID: "qa", IssueWeightages: []IssueWeightage{{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 100}}},
		{ID: "qd", IssueWeightages: []IssueWeightage{{IssueID: "depression", IssueName: "Depression", Weightage: 100}}},
	}

	result, err := e.Score(AssessmentInput{
		Responses: []Response{
			{QuestionID: "qa", Value: f(78)}, // anxiety clinical (≥75)
			{QuestionID: "qd", Value: f(95)}, // depression clinical (≥70)
		},
		Questions: questions,
		Method:    MethodWeightedAverage,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Depression", "Anxiety"}, result.PrimaryConcerns)
	assert.Contains(t, result.OverallSummary, "Depression")
}

func TestNormalizeAnswer(t *testing.T) {
	scale := &RatingScale{Min: 1, Max: 5}
	q := Question{ID: "q", RatingScale: scale, OptionValues: map[string]float64{"often": 75}}

	got, err := NormalizeAnswer(q, Response{QuestionID: "q", Value: f(3)})
	require.NoError(t, err)
	assert.Equal(t, 50.0, got)

	got, err = NormalizeAnswer(q, Response{QuestionID: "q", Option: "often"})
	require.NoError(t, err)
	assert.Equal(t, 75.0, got)

	_, err = NormalizeAnswer(q, Response{QuestionID: "q", Option: "never-configured"})
	assert.Error(t, err)

	// 无量表的数值答案按 0-100 截断
	got, err = NormalizeAnswer(Question{ID: "raw"}, Response{QuestionID: "raw", Value: f(140)})
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}
