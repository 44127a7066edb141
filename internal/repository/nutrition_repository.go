package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type NutritionRepository struct {
	DB *gorm.DB
}

func NewNutritionRepository(db *gorm.DB) *NutritionRepository {
	return &NutritionRepository{DB: db}
}

// ListRecords 按追加顺序返回全部营养记录
func (r *NutritionRepository) ListRecords(childID uint) ([]model.NutritionRecord, error) {
	var records []model.NutritionRecord
	err := r.DB.Where("child_id = ?", childID).Order("id asc").Find(&records).Error
	return records, err
}

// AppendAndReplaceRecommendations 在一个事务内追加营养记录并整表替换营养建议
func (r *NutritionRepository) AppendAndReplaceRecommendations(record *model.NutritionRecord, recs []model.NutritionRecommendation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", record.ChildID).
			Delete(&model.NutritionRecommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		return tx.Create(&recs).Error
	})
}

// ListRecommendations 行顺序即生成顺序（已按优先级降序持久化）
func (r *NutritionRepository) ListRecommendations(childID uint) ([]model.NutritionRecommendation, error) {
	var recs []model.NutritionRecommendation
	err := r.DB.Where("child_id = ?", childID).Order("id asc").Find(&recs).Error
	return recs, err
}
