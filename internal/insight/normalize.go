package insight

import (
	"fmt"
	"math"
)

// NormalizeAnswer 将作答映射到 0-100：
// 数值答案按题目量表线性缩放，选项答案查题目自带的取值表，
// 没有量表的数值答案视为已经是 0-100，仅做截断。
func NormalizeAnswer(q Question, r Response) (float64, error) {
	if r.Option != "" {
		v, ok := q.OptionValues[r.Option]
		if !ok {
			return 0, &ValidationError{Field: "option", Reason: fmt.Sprintf("question %s has no value for option %q", q.ID, r.Option)}
		}
		return clamp(v, 0, 100), nil
	}

	if r.Value == nil {
		return 0, &ValidationError{Field: "answer", Reason: fmt.Sprintf("response to question %s carries neither value nor option", q.ID)}
	}

	v := *r.Value
	if q.RatingScale == nil {
		return clamp(v, 0, 100), nil
	}

	span := q.RatingScale.Max - q.RatingScale.Min
	if span <= 0 {
		return 0, &ValidationError{Field: "ratingScale", Reason: fmt.Sprintf("question %s has a degenerate rating scale", q.ID)}
	}

	return clamp((v-q.RatingScale.Min)/span*100, 0, 100), nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
