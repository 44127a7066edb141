package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.AssessmentQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []string) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Where("id IN ?", ids).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListActive() ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.Where("active = ?", true).Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) List(page, limit int) ([]model.AssessmentQuestion, int64, error) {
	var qs []model.AssessmentQuestion
	var total int64
	query := r.DB.Model(&model.AssessmentQuestion{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("`order` asc, created_at asc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) Update(q *model.AssessmentQuestion) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.AssessmentQuestion{}, "id = ?", id).Error
}
