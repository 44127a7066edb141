package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(child *model.Child) error {
	return r.DB.Create(child).Error
}

func (r *ChildRepository) FindByID(id uint) (*model.Child, error) {
	var child model.Child
	err := r.DB.First(&child, id).Error
	return &child, err
}

func (r *ChildRepository) ListByParent(parentID uint) ([]model.Child, error) {
	var children []model.Child
	err := r.DB.Where("parent_id = ?", parentID).Order("created_at asc").Find(&children).Error
	return children, err
}

func (r *ChildRepository) List(page, limit int) ([]model.Child, int64, error) {
	var children []model.Child
	var total int64
	query := r.DB.Model(&model.Child{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at asc").Offset(offset).Limit(limit).Find(&children).Error
	return children, total, err
}

func (r *ChildRepository) Update(child *model.Child) error {
	return r.DB.Save(child).Error
}

func (r *ChildRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Child{}, id).Error
}
