package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allHabits() EatingHabits {
	return EatingHabits{
		EatsBreakfast:       true,
		DrinksEnoughWater:   true,
		EatsFruitsDaily:     true,
		EatsVegetablesDaily: true,
		LimitsJunkFood:      true,
		RegularMealTimes:    true,
		EatsVariedDiet:      true,
		AvoidsSugaryDrinks:  true,
	}
}

func nutritionRecord(heightCm, weightKg float64, habits EatingHabits) NutritionRecord {
	return NutritionRecord{
		Physical:     PhysicalMeasurement{HeightCm: heightCm, WeightKg: weightKg},
		EatingHabits: habits,
	}
}

func TestCalculateBMI(t *testing.T) {
	assert.Equal(t, 20.0, CalculateBMI(150, 45))
	assert.Equal(t, 0.0, CalculateBMI(0, 45))
	assert.Equal(t, 0.0, CalculateBMI(150, 0))
	assert.Equal(t, 0.0, CalculateBMI(-150, 45))
}

func TestBMICategoryPartition(t *testing.T) {
	cases := []struct {
		bmi  float64
		want BMICategory
	}{
		{15.9, BMIUnderweight},
		{16.0, BMINormalWeight},
		{24.9, BMINormalWeight},
		{25.0, BMIOverweight},
		{29.9, BMIOverweight},
		{30.0, BMIObese},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GetBMICategory(tc.bmi), "bmi=%v", tc.bmi)
	}

	assert.False(t, IsHealthyBMI(15.9))
	assert.True(t, IsHealthyBMI(16.0))
	assert.True(t, IsHealthyBMI(24.9))
	assert.False(t, IsHealthyBMI(25.0))
}

func TestHealthyHabitsScore(t *testing.T) {
	assert.Equal(t, 100.0, CalculateHealthyHabitsScore(allHabits()))
	assert.Equal(t, 0.0, CalculateHealthyHabitsScore(EatingHabits{}))

	half := EatingHabits{EatsBreakfast: true, DrinksEnoughWater: true, EatsFruitsDaily: true, EatsVegetablesDaily: true}
	assert.Equal(t, 50.0, CalculateHealthyHabitsScore(half))
}

func TestHealthScore(t *testing.T) {
	// 健康 BMI + 全部习惯 → 0.5×100 + 0.5×100 = 100
	assert.Equal(t, 100.0, CalculateHealthScore(20, allHabits()))
	// 不健康 BMI + 零习惯 → 0.5×70 + 0.5×0 = 35
	assert.Equal(t, 35.0, CalculateHealthScore(31, EatingHabits{}))
}

func TestAnalyzeNutrition(t *testing.T) {
	summary := AnalyzeNutrition(nil)
	assert.False(t, summary.HasData)

	summary = AnalyzeNutrition([]NutritionRecord{nutritionRecord(150, 45, allHabits())})
	require.True(t, summary.HasData)
	assert.Equal(t, 20.0, summary.BMI)
	assert.Equal(t, BMINormalWeight, summary.Category)
	assert.True(t, summary.IsHealthyBMI)
	assert.Equal(t, 100.0, summary.HabitsScore)
	assert.Equal(t, 100.0, summary.HealthScore)
}

func TestRecommendationsAllHabitsHealthy(t *testing.T) {
	recs := GenerateNutritionRecommendations([]NutritionRecord{nutritionRecord(150, 45, allHabits())})

	var praise bool
	for _, r := range recs {
		if r.Category == RecommendHabits {
			// 习惯全满时只允许出现 low 级别的表扬，不允许缺项建议
			assert.Equal(t, PriorityLow, r.Priority)
			praise = true
		}
	}
	assert.True(t, praise, "habitsScore ≥ 85 should yield a praise entry")
}

func TestRecommendationsHabitDeficiencies(t *testing.T) {
	habits := allHabits()
	habits.EatsBreakfast = false
	habits.DrinksEnoughWater = false

	recs := GenerateNutritionRecommendations([]NutritionRecord{nutritionRecord(150, 45, habits)})

	targets := map[string]bool{}
	for _, r := range recs {
		if r.Category == RecommendHabits && r.Priority == PriorityMedium {
			targets[r.TargetArea] = true
		}
	}
	assert.True(t, targets["breakfast"])
	assert.True(t, targets["hydration"])
	assert.Len(t, targets, 2)
}

func TestRecommendationsUnderweightCritical(t *testing.T) {
	// BMI = 40 / 1.6² = 15.6 → underweight
	recs := GenerateNutritionRecommendations([]NutritionRecord{nutritionRecord(160, 40, allHabits())})

	var medical, diet bool
	for _, r := range recs {
		if r.Category == RecommendMedical && r.Priority == PriorityCritical {
			medical = true
		}
		if r.Category == RecommendDiet {
			diet = true
		}
	}
	assert.True(t, medical, "underweight requires a critical medical consult")
	assert.True(t, diet)
}

func TestRecommendationsBMIChangeAlert(t *testing.T) {
	// BMI 20.0 → 23.5，Δ=3.5 > 2 → high 级 BMI 监测建议
	records := []NutritionRecord{
		nutritionRecord(150, 45, allHabits()),
		nutritionRecord(150, 52.9, allHabits()),
	}
	recs := GenerateNutritionRecommendations(records)

	var alert *NutritionRecommendation
	for i := range recs {
		if recs[i].TargetArea == "bmi_monitoring" {
			alert = &recs[i]
		}
	}
	require.NotNil(t, alert)
	assert.Equal(t, PriorityHigh, alert.Priority)
	assert.Equal(t, RecommendMedical, alert.Category)
}

func TestRecommendationsSortedAndIdempotent(t *testing.T) {
	habits := EatingHabits{EatsBreakfast: true}
	records := []NutritionRecord{
		nutritionRecord(150, 45, habits),
		nutritionRecord(140, 70, habits), // BMI 35.7 obese，且 ΔBMI > 2
	}

	recs := GenerateNutritionRecommendations(records)
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Priority.Weight(), recs[i].Priority.Weight())
	}

	again := GenerateNutritionRecommendations(records)
	assert.Equal(t, recs, again)
}
