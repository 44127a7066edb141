package service

import (
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"childwell_backend/internal/util"
	"childwell_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseService 推荐课程管理：课程 CRUD、素材上传、儿童报名与进度
type CourseService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewCourseService(courseRepo *repository.CourseRepository, storage *StorageService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Storage: storage}
}

type CourseRequest struct {
	Code        string `json:"code" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	IsPublished *bool  `json:"isPublished"`
}

func (s *CourseService) CreateCourse(req CourseRequest) (*model.Course, error) {
	if _, err := s.CourseRepo.FindByCode(req.Code); err == nil {
		return nil, util.ErrCourseCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	course := &model.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	}
	if req.IsPublished != nil && *req.IsPublished {
		now := time.Now()
		course.IsPublished = true
		course.PublishedAt = &now
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(id uint, req CourseRequest) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if req.Code != course.Code {
		if _, err := s.CourseRepo.FindByCode(req.Code); err == nil {
			return nil, util.ErrCourseCodeTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	course.Code = req.Code
	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	if req.IsPublished != nil {
		if *req.IsPublished && !course.IsPublished {
			now := time.Now()
			course.PublishedAt = &now
		}
		course.IsPublished = *req.IsPublished
	}
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) GetCourseByCode(code string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) ListCourses(page, limit int, publishedOnly bool) ([]model.Course, int64, error) {
	return s.CourseRepo.List(page, limit, publishedOnly)
}

func (s *CourseService) DeleteCourse(id uint) error {
	return s.CourseRepo.Delete(id)
}

// UploadMaterial 上传课程素材。视频先落临时文件探测时长，再经存储服务上传。
func (s *CourseService) UploadMaterial(ctx context.Context, courseID uint, title string, order int, file *multipart.FileHeader) (*model.CourseMaterial, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	materialType := "document"
	switch ext {
	case ".mp4", ".mov", ".mkv", ".webm":
		materialType = "video"
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	material := &model.CourseMaterial{
		CourseID:  courseID,
		Title:     title,
		Type:      materialType,
		SizeBytes: file.Size,
		Order:     order,
	}

	filename := fmt.Sprintf("courses/%d/%s%s", courseID, uuid.New().String(), ext)
	contentType := file.Header.Get("Content-Type")

	if materialType == "video" {
		tmp, err := os.CreateTemp("", "material-*"+ext)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp.Name())

		if _, err := tmp.ReadFrom(src); err != nil {
			tmp.Close()
			return nil, err
		}
		tmp.Close()

		// 时长探测失败不阻断上传
		if info, err := util.ProbeMedia(tmp.Name()); err == nil {
			material.DurationSec = info.DurationSec
		} else {
			logger.Log.Warn("video probe failed", zap.String("filename", file.Filename), zap.Error(err))
		}

		url, err := s.Storage.UploadFile(ctx, filename, tmp.Name(), contentType)
		if err != nil {
			return nil, err
		}
		material.URL = url
	} else {
		url, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
		if err != nil {
			return nil, err
		}
		material.URL = url
	}

	if err := s.CourseRepo.AddMaterial(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *CourseService) ListMaterials(courseID uint) ([]model.CourseMaterial, error) {
	return s.CourseRepo.ListMaterials(courseID)
}

func (s *CourseService) DeleteMaterial(id string) error {
	return s.CourseRepo.DeleteMaterial(id)
}

// Enroll 为儿童报名课程，重复报名幂等返回现有记录
func (s *CourseService) Enroll(courseID, childID uint) (*model.CourseEnrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsPublished {
		return nil, util.ErrCourseNotFound
	}

	if existing, err := s.CourseRepo.FindEnrollment(courseID, childID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.CourseEnrollment{CourseID: courseID, ChildID: childID}
	if err := s.CourseRepo.SaveEnrollment(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// UpdateProgress 更新学习进度，到 100 时记录完成时间
func (s *CourseService) UpdateProgress(courseID, childID uint, progress float64) (*model.CourseEnrollment, error) {
	enrollment, err := s.CourseRepo.FindEnrollment(courseID, childID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	enrollment.Progress = progress
	if progress >= 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}
	if err := s.CourseRepo.SaveEnrollment(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) ListEnrollments(childID uint) ([]model.CourseEnrollment, error) {
	return s.CourseRepo.ListEnrollmentsByChild(childID)
}
