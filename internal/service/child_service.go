package service

import (
	"childwell_backend/internal/model"
	"childwell_backend/internal/repository"
	"childwell_backend/internal/util"
	"time"
)

type ChildService struct {
	ChildRepo *repository.ChildRepository
}

func NewChildService(childRepo *repository.ChildRepository) *ChildService {
	return &ChildService{ChildRepo: childRepo}
}

type ChildRequest struct {
	Name        string    `json:"name" binding:"required"`
	DateOfBirth time.Time `json:"dateOfBirth" binding:"required"`
	Gender      string    `json:"gender"`
	Notes       string    `json:"notes"`
}

func (s *ChildService) CreateChild(parentID uint, req ChildRequest) (*model.Child, error) {
	child := &model.Child{
		ParentID:    parentID,
		Name:        req.Name,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Notes:       req.Notes,
	}
	if err := s.ChildRepo.Create(child); err != nil {
		return nil, err
	}
	return child, nil
}

// GetChildFor 取儿童档案并做归属校验：家长只能访问自己的孩子，
// 指导员和管理员不受限。
func (s *ChildService) GetChildFor(claims *util.Claims, childID uint) (*model.Child, error) {
	child, err := s.ChildRepo.FindByID(childID)
	if err != nil {
		return nil, util.ErrChildNotFound
	}
	if claims.Role == model.Parent && child.ParentID != claims.UserID {
		return nil, util.ErrPermissionDenied
	}
	return child, nil
}

func (s *ChildService) ListChildren(claims *util.Claims, page, limit int) ([]model.Child, int64, error) {
	if claims.Role == model.Parent {
		children, err := s.ChildRepo.ListByParent(claims.UserID)
		return children, int64(len(children)), err
	}
	return s.ChildRepo.List(page, limit)
}

func (s *ChildService) UpdateChild(claims *util.Claims, childID uint, req ChildRequest) (*model.Child, error) {
	child, err := s.GetChildFor(claims, childID)
	if err != nil {
		return nil, err
	}

	child.Name = req.Name
	child.DateOfBirth = req.DateOfBirth
	child.Gender = req.Gender
	child.Notes = req.Notes

	if err := s.ChildRepo.Update(child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) DeleteChild(claims *util.Claims, childID uint) error {
	if _, err := s.GetChildFor(claims, childID); err != nil {
		return err
	}
	return s.ChildRepo.Delete(childID)
}
