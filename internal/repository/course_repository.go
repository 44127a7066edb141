package repository

import (
	"childwell_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) FindByCode(code string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("code = ?", code).First(&course).Error
	return &course, err
}

func (r *CourseRepository) List(page, limit int, publishedOnly bool) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) AddMaterial(material *model.CourseMaterial) error {
	return r.DB.Create(material).Error
}

func (r *CourseRepository) ListMaterials(courseID uint) ([]model.CourseMaterial, error) {
	var materials []model.CourseMaterial
	err := r.DB.Where("course_id = ?", courseID).Order("`order` asc, created_at asc").Find(&materials).Error
	return materials, err
}

func (r *CourseRepository) DeleteMaterial(id string) error {
	return r.DB.Delete(&model.CourseMaterial{}, "id = ?", id).Error
}

func (r *CourseRepository) FindEnrollment(courseID, childID uint) (*model.CourseEnrollment, error) {
	var enrollment model.CourseEnrollment
	err := r.DB.Where("course_id = ? AND child_id = ?", courseID, childID).First(&enrollment).Error
	return &enrollment, err
}

func (r *CourseRepository) SaveEnrollment(enrollment *model.CourseEnrollment) error {
	return r.DB.Save(enrollment).Error
}

func (r *CourseRepository) ListEnrollmentsByChild(childID uint) ([]model.CourseEnrollment, error) {
	var enrollments []model.CourseEnrollment
	err := r.DB.Where("child_id = ?", childID).Order("created_at asc").Find(&enrollments).Error
	return enrollments, err
}
