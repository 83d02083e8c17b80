package service

import (
	"errors"
	"fmt"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name                 string          `json:"name" validate:"required,max=255"`
	SKU                  string          `json:"sku" validate:"required,max=255"`
	Price                decimal.Decimal `json:"price"`
	InitialStockQuantity int             `json:"initial_stock_quantity" validate:"min=0"`
	CategoryID           *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest deliberately has no stock fields. Stock belongs to
// the ledger; initial_stock_quantity is immutable after creation.
type UpdateProductRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	SKU        string          `json:"sku" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price"`
	CategoryID *uuid.UUID      `json:"category_id"`
}

type ProductService interface {
	Create(req *CreateProductRequest) (*model.Product, error)
	Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	Delete(id uuid.UUID) error
	FindAll(page, limit int) ([]model.Product, int64, error)
	FindOne(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) Create(req *CreateProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be at least 0", apperr.ErrInvalidInput)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, fmt.Errorf("%w: SKU already exists", apperr.ErrInvalidInput)
	}

	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:                 req.Name,
		SKU:                  req.SKU,
		Price:                req.Price,
		InitialStockQuantity: req.InitialStockQuantity,
		// Stock starts at the initial quantity; from here on only the
		// ledger moves it.
		CurrentStockQuantity: req.InitialStockQuantity,
		CategoryID:           req.CategoryID,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be at least 0", apperr.ErrInvalidInput)
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if req.SKU != product.SKU {
		existing, _ := s.productRepo.FindBySKU(req.SKU)
		if existing != nil && existing.ID != uuid.Nil {
			return nil, fmt.Errorf("%w: SKU already exists", apperr.ErrInvalidInput)
		}
	}

	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.SKU = req.SKU
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.Category = nil

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) FindAll(page, limit int) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(page, limit)
}

func (s *productService) FindOne(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) checkCategory(categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	ok, err := s.categoryRepo.Exists(*categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: category %s", apperr.ErrReferentialViolation, *categoryID)
	}
	return nil
}
