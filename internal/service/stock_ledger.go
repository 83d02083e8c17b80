package service

import (
	"errors"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLedger owns every change to Product.CurrentStockQuantity. Both
// operations run inside the caller's transaction and never open one of
// their own, so a later failure in the same purchase operation rolls the
// stock change back too.
type StockLedger interface {
	IncreaseStock(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error)
	DecreaseStock(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error)
}

type stockLedger struct {
	productRepo repository.ProductRepository
}

func NewStockLedger(productRepo repository.ProductRepository) StockLedger {
	return &stockLedger{productRepo: productRepo}
}

func (l *stockLedger) IncreaseStock(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error) {
	product, err := l.productRepo.FindByIDTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	product.CurrentStockQuantity += quantity
	if err := l.productRepo.UpdateStock(tx, product.ID, product.CurrentStockQuantity); err != nil {
		return nil, err
	}
	return product, nil
}

func (l *stockLedger) DecreaseStock(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error) {
	product, err := l.productRepo.FindByIDTx(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	if product.CurrentStockQuantity < quantity {
		return nil, &apperr.InsufficientStockError{
			ProductID: product.ID,
			Requested: quantity,
			Available: product.CurrentStockQuantity,
		}
	}

	product.CurrentStockQuantity -= quantity
	if err := l.productRepo.UpdateStock(tx, product.ID, product.CurrentStockQuantity); err != nil {
		return nil, err
	}
	return product, nil
}
