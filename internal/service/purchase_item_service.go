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

// CreatePurchaseItemInput carries one purchase line. Any client-supplied
// total price is ignored: the stored TotalPrice is always recomputed here.
type CreatePurchaseItemInput struct {
	PurchaseID uuid.UUID
	ProductID  uuid.UUID
	LineNo     int
	Quantity   int
	UnitPrice  decimal.Decimal
}

// UpdatePurchaseItemInput is a partial update; nil fields keep stored values.
type UpdatePurchaseItemInput struct {
	ProductID *uuid.UUID       `json:"product_id"`
	Quantity  *int             `json:"quantity" validate:"omitempty,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type PurchaseItemService interface {
	Create(tx *gorm.DB, input *CreatePurchaseItemInput) (*model.PurchaseItem, error)
	Update(id uuid.UUID, input *UpdatePurchaseItemInput) (*model.PurchaseItem, error)
	Delete(id uuid.UUID) error
	DeleteByPurchase(tx *gorm.DB, purchaseID uuid.UUID) error
	FindAll(page, limit int) ([]model.PurchaseItem, int64, error)
	FindOne(id uuid.UUID) (*model.PurchaseItem, error)
}

type purchaseItemService struct {
	itemRepo repository.PurchaseItemRepository
}

func NewPurchaseItemService(itemRepo repository.PurchaseItemRepository) PurchaseItemService {
	return &purchaseItemService{itemRepo: itemRepo}
}

func (s *purchaseItemService) Create(tx *gorm.DB, input *CreatePurchaseItemInput) (*model.PurchaseItem, error) {
	if input.PurchaseID == uuid.Nil {
		return nil, fmt.Errorf("%w: purchase id is required", apperr.ErrInvalidInput)
	}
	if input.ProductID == uuid.Nil {
		return nil, fmt.Errorf("%w: product id is required", apperr.ErrInvalidInput)
	}
	if input.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrInvalidInput)
	}
	if input.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must be at least 0", apperr.ErrInvalidInput)
	}

	item := &model.PurchaseItem{
		PurchaseID: input.PurchaseID,
		ProductID:  input.ProductID,
		LineNo:     input.LineNo,
		Quantity:   input.Quantity,
		UnitPrice:  input.UnitPrice,
		TotalPrice: totalPrice(input.Quantity, input.UnitPrice),
	}

	if err := s.itemRepo.Create(tx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *purchaseItemService) Update(id uuid.UUID, input *UpdatePurchaseItemInput) (*model.PurchaseItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if input.ProductID != nil {
		item.ProductID = *input.ProductID
		item.Product = nil
	}
	if input.Quantity != nil {
		if *input.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", apperr.ErrInvalidInput)
		}
		item.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must be at least 0", apperr.ErrInvalidInput)
		}
		item.UnitPrice = *input.UnitPrice
	}

	// Recompute the derived total whenever quantity or unit price changes,
	// using the new value where provided and the stored one otherwise.
	if input.Quantity != nil || input.UnitPrice != nil {
		item.TotalPrice = totalPrice(item.Quantity, item.UnitPrice)
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *purchaseItemService) Delete(id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.itemRepo.Delete(id)
}

func (s *purchaseItemService) DeleteByPurchase(tx *gorm.DB, purchaseID uuid.UUID) error {
	return s.itemRepo.DeleteByPurchase(tx, purchaseID)
}

func (s *purchaseItemService) FindAll(page, limit int) ([]model.PurchaseItem, int64, error) {
	return s.itemRepo.FindAll(page, limit)
}

func (s *purchaseItemService) FindOne(id uuid.UUID) (*model.PurchaseItem, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func totalPrice(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
