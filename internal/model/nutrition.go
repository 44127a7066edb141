package model

import (
	"time"

	"childwell_backend/internal/insight"
)

// NutritionRecord 一次营养记录：身体测量 + 八项饮食习惯勾选，只追加
// swagger:model NutritionRecord
type NutritionRecord struct {
	BaseModel
	ChildID         uint      `gorm:"index;not null" json:"childId"`
	HeightCm        float64   `gorm:"not null" json:"heightCm"`
	WeightKg        float64   `gorm:"not null" json:"weightKg"`
	MeasurementDate time.Time `json:"measurementDate"`

	EatsBreakfast       bool `gorm:"default:false" json:"eatsBreakfast"`
	DrinksEnoughWater   bool `gorm:"default:false" json:"drinksEnoughWater"`
	EatsFruitsDaily     bool `gorm:"default:false" json:"eatsFruitsDaily"`
	EatsVegetablesDaily bool `gorm:"default:false" json:"eatsVegetablesDaily"`
	LimitsJunkFood      bool `gorm:"default:false" json:"limitsJunkFood"`
	RegularMealTimes    bool `gorm:"default:false" json:"regularMealTimes"`
	EatsVariedDiet      bool `gorm:"default:false" json:"eatsVariedDiet"`
	AvoidsSugaryDrinks  bool `gorm:"default:false" json:"avoidsSugaryDrinks"`

	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (NutritionRecord) TableName() string {
	return "nutrition_records"
}

func (r *NutritionRecord) ToInsight() insight.NutritionRecord {
	return insight.NutritionRecord{
		Physical: insight.PhysicalMeasurement{
			HeightCm:        r.HeightCm,
			WeightKg:        r.WeightKg,
			MeasurementDate: r.MeasurementDate,
		},
		EatingHabits: insight.EatingHabits{
			EatsBreakfast:       r.EatsBreakfast,
			DrinksEnoughWater:   r.DrinksEnoughWater,
			EatsFruitsDaily:     r.EatsFruitsDaily,
			EatsVegetablesDaily: r.EatsVegetablesDaily,
			LimitsJunkFood:      r.LimitsJunkFood,
			RegularMealTimes:    r.RegularMealTimes,
			EatsVariedDiet:      r.EatsVariedDiet,
			AvoidsSugaryDrinks:  r.AvoidsSugaryDrinks,
		},
		Notes:      r.Notes,
		RecordedAt: r.RecordedAt,
	}
}

// NutritionRecommendation 营养建议。每次新增营养记录后整表替换。
// swagger:model NutritionRecommendation
type NutritionRecommendation struct {
	BaseModel
	ChildID    uint   `gorm:"index;not null" json:"childId"`
	Category   string `gorm:"size:20;not null" json:"category"`
	Text       string `gorm:"type:text;not null" json:"recommendation"`
	Priority   string `gorm:"size:20;not null" json:"priority"`
	TargetArea string `gorm:"size:50" json:"targetArea"`
}

func (NutritionRecommendation) TableName() string {
	return "nutrition_recommendations"
}
