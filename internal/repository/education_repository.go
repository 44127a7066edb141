package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type EducationRepository struct {
	DB *gorm.DB
}

func NewEducationRepository(db *gorm.DB) *EducationRepository {
	return &EducationRepository{DB: db}
}

func (r *EducationRepository) CreateRecord(record *model.EducationRecord) error {
	return r.DB.Create(record).Error
}

// ListRecords 按追加顺序返回全部成绩记录（追加顺序即时间顺序）
func (r *EducationRepository) ListRecords(childID uint) ([]model.EducationRecord, error) {
	var records []model.EducationRecord
	err := r.DB.Where("child_id = ?", childID).Order("id asc").Find(&records).Error
	return records, err
}

// AppendAndReplaceSuggestions 在一个事务内追加成绩记录并整表替换学习建议，
// 保证“追加记录 + 重建建议”的读改写对持久层是原子的。
func (r *EducationRepository) AppendAndReplaceSuggestions(record *model.EducationRecord, suggestions []model.StudySuggestion) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if err := tx.Where("child_id = ?", record.ChildID).
			Delete(&model.StudySuggestion{}).Error; err != nil {
			return err
		}
		if len(suggestions) == 0 {
			return nil
		}
		return tx.Create(&suggestions).Error
	})
}

// ListSuggestions 行顺序即生成顺序（已按优先级降序持久化）
func (r *EducationRepository) ListSuggestions(childID uint) ([]model.StudySuggestion, error) {
	var suggestions []model.StudySuggestion
	err := r.DB.Where("child_id = ?", childID).Order("id asc").Find(&suggestions).Error
	return suggestions, err
}
