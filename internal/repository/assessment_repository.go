package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(result *model.AssessmentResult) error {
	return r.DB.Create(result).Error
}

func (r *AssessmentRepository) FindByID(id string) (*model.AssessmentResult, error) {
	var result model.AssessmentResult
	err := r.DB.First(&result, "id = ?", id).Error
	return &result, err
}

func (r *AssessmentRepository) ListByChild(childID uint, page, limit int) ([]model.AssessmentResult, int64, error) {
	var results []model.AssessmentResult
	var total int64
	query := r.DB.Model(&model.AssessmentResult{}).Where("child_id = ?", childID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("assessment_date desc").Offset(offset).Limit(limit).Find(&results).Error
	return results, total, err
}

func (r *AssessmentRepository) LatestByChild(childID uint) (*model.AssessmentResult, error) {
	var result model.AssessmentResult
	err := r.DB.Where("child_id = ?", childID).Order("assessment_date desc").First(&result).Error
	return &result, err
}
