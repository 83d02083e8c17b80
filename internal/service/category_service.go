package service

import (
	"errors"
	"fmt"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CategoryService interface {
	Create(req *CategoryRequest) (*model.Category, error)
	Update(id uuid.UUID, req *CategoryRequest) (*model.Category, error)
	Delete(id uuid.UUID) error
	FindAll(page, limit int) ([]model.Category, int64, error)
	FindOne(id uuid.UUID) (*model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req *CategoryRequest) (*model.Category, error) {
	existing, _ := s.categoryRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: category name already exists", apperr.ErrInvalidInput)
	}

	category := &model.Category{Name: req.Name}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(id uuid.UUID, req *CategoryRequest) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	category.Name = req.Name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *categoryService) FindAll(page, limit int) ([]model.Category, int64, error) {
	return s.categoryRepo.FindAll(page, limit)
}

func (s *categoryService) FindOne(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}
