package insight

import (
	"fmt"
	"math"
	"time"
)

// PhysicalMeasurement 身体测量数据
type PhysicalMeasurement struct {
	HeightCm        float64   `json:"heightCm"`
	WeightKg        float64   `json:"weightKg"`
	MeasurementDate time.Time `json:"measurementDate"`
}

// EatingHabits 八项固定的饮食习惯勾选项
type EatingHabits struct {
	EatsBreakfast       bool `json:"eatsBreakfast"`
	DrinksEnoughWater   bool `json:"drinksEnoughWater"`
	EatsFruitsDaily     bool `json:"eatsFruitsDaily"`
	EatsVegetablesDaily bool `json:"eatsVegetablesDaily"`
	LimitsJunkFood      bool `json:"limitsJunkFood"`
	RegularMealTimes    bool `json:"regularMealTimes"`
	EatsVariedDiet      bool `json:"eatsVariedDiet"`
	AvoidsSugaryDrinks  bool `json:"avoidsSugaryDrinks"`
}

func (h EatingHabits) flags() []bool {
	return []bool{
		h.EatsBreakfast,
		h.DrinksEnoughWater,
		h.EatsFruitsDaily,
		h.EatsVegetablesDaily,
		h.LimitsJunkFood,
		h.RegularMealTimes,
		h.EatsVariedDiet,
		h.AvoidsSugaryDrinks,
	}
}

// NutritionRecord 一次营养记录，只追加
type NutritionRecord struct {
	Physical     PhysicalMeasurement `json:"physicalMeasurement"`
	EatingHabits EatingHabits        `json:"eatingHabits"`
	Notes        string              `json:"notes,omitempty"`
	RecordedAt   time.Time           `json:"recordedAt"`
}

// BMICategory BMI 分类，在 16/25/30 处划分，无缝隙无重叠
type BMICategory string

const (
	BMIUnderweight  BMICategory = "underweight"
	BMINormalWeight BMICategory = "normal_weight"
	BMIOverweight   BMICategory = "overweight"
	BMIObese        BMICategory = "obese"
)

// RecommendationCategory 营养建议分类
type RecommendationCategory string

const (
	RecommendDiet     RecommendationCategory = "diet"
	RecommendExercise RecommendationCategory = "exercise"
	RecommendHabits   RecommendationCategory = "habits"
	RecommendMedical  RecommendationCategory = "medical"
)

// NutritionRecommendation 营养建议，每次新增记录后整体重建
type NutritionRecommendation struct {
	Category   RecommendationCategory `json:"category"`
	Text       string                 `json:"recommendation"`
	Priority   Priority               `json:"priority"`
	TargetArea string                 `json:"targetArea"`
}

// NutritionSummary 营养概况
type NutritionSummary struct {
	HasData      bool        `json:"hasData"`
	BMI          float64     `json:"bmi"`
	Category     BMICategory `json:"category"`
	IsHealthyBMI bool        `json:"isHealthyBmi"`
	HabitsScore  float64     `json:"habitsScore"`
	HealthScore  float64     `json:"healthScore"`
}

// CalculateBMI 任一输入非正时返回 0，否则 weight / (height/100)^2，保留 1 位小数
func CalculateBMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	meters := heightCm / 100
	return round1(weightKg / (meters * meters))
}

func GetBMICategory(bmi float64) BMICategory {
	switch {
	case bmi < 16:
		return BMIUnderweight
	case bmi < 25:
		return BMINormalWeight
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func IsHealthyBMI(bmi float64) bool {
	return bmi >= 16 && bmi < 25
}

// CalculateHealthyHabitsScore 八项习惯中为 true 的百分比，保留 1 位小数
func CalculateHealthyHabitsScore(habits EatingHabits) float64 {
	flags := habits.flags()
	count := 0
	for _, f := range flags {
		if f {
			count++
		}
	}
	return round1(float64(count) / float64(len(flags)) * 100)
}

// CalculateHealthScore BMI 分量（健康 100，否则 70）与习惯分各占一半
func CalculateHealthScore(bmi float64, habits EatingHabits) float64 {
	bmiComponent := 70.0
	if IsHealthyBMI(bmi) {
		bmiComponent = 100.0
	}
	return round1(0.5*bmiComponent + 0.5*CalculateHealthyHabitsScore(habits))
}

// AnalyzeNutrition 基于最新一条记录计算营养概况
func AnalyzeNutrition(records []NutritionRecord) NutritionSummary {
	if len(records) == 0 {
		return NutritionSummary{Category: BMIUnderweight}
	}
	latest := records[len(records)-1]
	bmi := CalculateBMI(latest.Physical.HeightCm, latest.Physical.WeightKg)
	return NutritionSummary{
		HasData:      true,
		BMI:          bmi,
		Category:     GetBMICategory(bmi),
		IsHealthyBMI: IsHealthyBMI(bmi),
		HabitsScore:  CalculateHealthyHabitsScore(latest.EatingHabits),
		HealthScore:  CalculateHealthScore(bmi, latest.EatingHabits),
	}
}

// nutritionContext 规则级联的求值上下文
type nutritionContext struct {
	latest      NutritionRecord
	bmi         float64
	category    BMICategory
	habitsScore float64
	prevBMI     *float64
}

// habitRule 固定子集内的缺项习惯，每个为 false 的勾选项产生一条 medium 建议
type habitRule struct {
	flag   func(EatingHabits) bool
	target string
	text   string
}

var habitDeficiencies = []habitRule{
	{func(h EatingHabits) bool { return h.EatsBreakfast }, "breakfast", "Start the day with a regular breakfast"},
	{func(h EatingHabits) bool { return h.DrinksEnoughWater }, "hydration", "Increase daily water intake"},
	{func(h EatingHabits) bool { return h.EatsFruitsDaily }, "fruits", "Include fruit in the daily diet"},
	{func(h EatingHabits) bool { return h.EatsVegetablesDaily }, "vegetables", "Include vegetables in every main meal"},
	{func(h EatingHabits) bool { return h.LimitsJunkFood }, "junk_food", "Cut down on junk food and processed snacks"},
	{func(h EatingHabits) bool { return h.RegularMealTimes }, "meal_timing", "Keep meal times consistent every day"},
	{func(h EatingHabits) bool { return h.EatsVariedDiet }, "variety", "Add more variety across food groups"},
}

var nutritionAdvice = []advisoryRule[nutritionContext, NutritionRecommendation]{
	{
		when: func(c nutritionContext) bool { return c.category == BMIUnderweight },
		build: func(c nutritionContext) []NutritionRecommendation {
			return []NutritionRecommendation{
				{
					Category:   RecommendDiet,
					Text:       "Increase calorie intake with nutrient-dense foods to support healthy weight gain",
					Priority:   PriorityHigh,
					TargetArea: "weight_gain",
				},
				{
					Category:   RecommendMedical,
					Text:       "BMI is below the healthy range; consult a pediatrician or nutritionist promptly",
					Priority:   PriorityCritical,
					TargetArea: "underweight",
				},
			}
		},
	},
	{
		when: func(c nutritionContext) bool { return c.category == BMIOverweight },
		build: func(c nutritionContext) []NutritionRecommendation {
			return []NutritionRecommendation{
				{
					Category:   RecommendDiet,
					Text:       "Reduce portion sizes and prefer whole foods over processed snacks",
					Priority:   PriorityHigh,
					TargetArea: "weight_management",
				},
				{
					Category:   RecommendExercise,
					Text:       "Add at least 60 minutes of active play or exercise every day",
					Priority:   PriorityHigh,
					TargetArea: "physical_activity",
				},
			}
		},
	},
	{
		when: func(c nutritionContext) bool { return c.category == BMIObese },
		build: func(c nutritionContext) []NutritionRecommendation {
			return []NutritionRecommendation{
				{
					Category:   RecommendDiet,
					Text:       "Work with a nutritionist on a structured meal plan for healthy weight reduction",
					Priority:   PriorityCritical,
					TargetArea: "weight_management",
				},
				{
					Category:   RecommendExercise,
					Text:       "Build a daily supervised physical activity routine",
					Priority:   PriorityCritical,
					TargetArea: "physical_activity",
				},
			}
		},
	},
	{
		when: func(c nutritionContext) bool { return true },
		build: func(c nutritionContext) []NutritionRecommendation {
			var out []NutritionRecommendation
			for _, rule := range habitDeficiencies {
				if !rule.flag(c.latest.EatingHabits) {
					out = append(out, NutritionRecommendation{
						Category:   RecommendHabits,
						Text:       rule.text,
						Priority:   PriorityMedium,
						TargetArea: rule.target,
					})
				}
			}
			return out
		},
	},
	{
		when: func(c nutritionContext) bool {
			return c.prevBMI != nil && math.Abs(c.bmi-*c.prevBMI) > 2
		},
		build: func(c nutritionContext) []NutritionRecommendation {
			return []NutritionRecommendation{{
				Category:   RecommendMedical,
				Text:       fmt.Sprintf("BMI changed from %.1f to %.1f since the previous record; monitor closely and consider a check-up", *c.prevBMI, c.bmi),
				Priority:   PriorityHigh,
				TargetArea: "bmi_monitoring",
			}}
		},
	},
	{
		when: func(c nutritionContext) bool { return c.habitsScore >= 85 },
		build: func(c nutritionContext) []NutritionRecommendation {
			return []NutritionRecommendation{{
				Category:   RecommendHabits,
				Text:       "Excellent eating habits; keep up the current routine",
				Priority:   PriorityLow,
				TargetArea: "habits",
			}}
		},
	},
}

// GenerateNutritionRecommendations 基于最新记录的规则级联，按优先级降序稳定排序。
// 每次新增营养记录后整体重建。
func GenerateNutritionRecommendations(records []NutritionRecord) []NutritionRecommendation {
	if len(records) == 0 {
		return nil
	}

	latest := records[len(records)-1]
	ctx := nutritionContext{
		latest:      latest,
		bmi:         CalculateBMI(latest.Physical.HeightCm, latest.Physical.WeightKg),
		habitsScore: CalculateHealthyHabitsScore(latest.EatingHabits),
	}
	ctx.category = GetBMICategory(ctx.bmi)

	if len(records) >= 2 {
		prev := records[len(records)-2]
		prevBMI := CalculateBMI(prev.Physical.HeightCm, prev.Physical.WeightKg)
		ctx.prevBMI = &prevBMI
	}

	recs := evalRules(ctx, nutritionAdvice)
	sortByPriority(recs, func(r NutritionRecommendation) Priority { return r.Priority })
	return recs
}
