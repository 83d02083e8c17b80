package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"
	"go-purchasing-api/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PurchaseItemInput is one line of an inbound purchase payload. A client
// supplied total_price is accepted by the decoder but never stored.
type PurchaseItemInput struct {
	ProductID  uuid.UUID        `json:"product_id" validate:"uuid_required"`
	Quantity   int              `json:"quantity" validate:"required,min=1"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice *decimal.Decimal `json:"total_price,omitempty" validate:"-"`
}

type CreatePurchaseRequest struct {
	SupplierID   uuid.UUID           `json:"supplier_id" validate:"uuid_required"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	PurchaseDate string              `json:"purchase_date" validate:"required"`
	Items        []PurchaseItemInput `json:"items" validate:"required,min=1,dive"`
}

// UpdatePurchaseRequest replaces the full item list; header fields are
// optional and default to the stored values.
type UpdatePurchaseRequest struct {
	SupplierID   *uuid.UUID          `json:"supplier_id"`
	TotalAmount  *decimal.Decimal    `json:"total_amount"`
	PurchaseDate *string             `json:"purchase_date"`
	Items        []PurchaseItemInput `json:"items" validate:"omitempty,dive"`
}

// PurchaseService is the only component allowed to compose the purchase item
// store and the stock ledger into one atomic unit of work.
type PurchaseService interface {
	Create(req *CreatePurchaseRequest) (*model.Purchase, error)
	Update(id uuid.UUID, req *UpdatePurchaseRequest) (*model.Purchase, error)
	Delete(id uuid.UUID) error
	FindAll(page, limit int) ([]model.Purchase, int64, error)
	FindOne(id uuid.UUID) (*model.Purchase, error)
}

type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	itemService  PurchaseItemService
	stockLedger  StockLedger
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
	log          *logrus.Logger
	wsHub        *ws.Hub
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	itemService PurchaseItemService,
	stockLedger StockLedger,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	db *gorm.DB,
	log *logrus.Logger,
	hub *ws.Hub,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		itemService:  itemService,
		stockLedger:  stockLedger,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		db:           db,
		log:          log,
		wsHub:        hub,
	}
}

func (s *purchaseService) Create(req *CreatePurchaseRequest) (*model.Purchase, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase items are required", apperr.ErrInvalidInput)
	}
	if req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount must be at least 0", apperr.ErrInvalidInput)
	}

	purchaseDate, err := parsePurchaseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	// Referential checks happen before any mutation.
	if err := s.checkReferences(req.SupplierID, req.Items); err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		SupplierID:   req.SupplierID,
		TotalAmount:  req.TotalAmount,
		PurchaseDate: purchaseDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.purchaseRepo.Create(tx, purchase); err != nil {
			return err
		}
		return s.applyItems(tx, purchase.ID, req.Items)
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"module":      "purchase",
			"supplier_id": req.SupplierID,
		}).Error("purchase create rolled back: ", err)
		return nil, err
	}

	created, err := s.purchaseRepo.FindByID(purchase.ID)
	if err != nil {
		return nil, err
	}

	s.broadcastStockEvent("purchase_created", created)
	return created, nil
}

func (s *purchaseService) Update(id uuid.UUID, req *UpdatePurchaseRequest) (*model.Purchase, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: purchase items are required", apperr.ErrInvalidInput)
	}
	if req.TotalAmount != nil && req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount must be at least 0", apperr.ErrInvalidInput)
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != nil {
		parsed, err := parsePurchaseDate(*req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		purchaseDate = &parsed
	}

	// Referential checks run before the transaction opens, same as Create.
	// The stored supplier was already validated when it was written, so only
	// a replacement supplier needs checking.
	if req.SupplierID != nil {
		if err := s.checkSupplier(*req.SupplierID); err != nil {
			return nil, err
		}
	}
	if err := s.checkProducts(req.Items); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchase, err := s.purchaseRepo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		// Header fields default to the stored values when omitted.
		if req.SupplierID != nil {
			purchase.SupplierID = *req.SupplierID
		}
		if req.TotalAmount != nil {
			purchase.TotalAmount = *req.TotalAmount
		}
		if purchaseDate != nil {
			purchase.PurchaseDate = *purchaseDate
		}

		if err := s.purchaseRepo.Update(tx, purchase); err != nil {
			return err
		}

		// Reversal pass: undo the stock effect of every existing line
		// before the rows go away. An InsufficientStock here means the
		// stock was consumed elsewhere since the original purchase, and
		// the whole update aborts.
		for _, item := range purchase.PurchaseItems {
			if _, err := s.stockLedger.DecreaseStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := s.itemService.DeleteByPurchase(tx, purchase.ID); err != nil {
			return err
		}

		// Replacement pass: full replace, not a diff.
		return s.applyItems(tx, purchase.ID, req.Items)
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"module":      "purchase",
			"purchase_id": id,
		}).Error("purchase update rolled back: ", err)
		return nil, err
	}

	updated, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	s.broadcastStockEvent("purchase_updated", updated)
	return updated, nil
}

func (s *purchaseService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		purchase, err := s.purchaseRepo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		// Reverse each line's stock effect, then drop the lines, then
		// the header. All of it commits or none of it does.
		for _, item := range purchase.PurchaseItems {
			if _, err := s.stockLedger.DecreaseStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := s.itemService.DeleteByPurchase(tx, purchase.ID); err != nil {
			return err
		}
		return s.purchaseRepo.Delete(tx, purchase.ID)
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"module":      "purchase",
			"purchase_id": id,
		}).Error("purchase delete rolled back: ", err)
		return err
	}

	s.broadcastStockEvent("purchase_deleted", &model.Purchase{BaseModel: model.BaseModel{ID: id}})
	return nil
}

func (s *purchaseService) FindAll(page, limit int) ([]model.Purchase, int64, error) {
	return s.purchaseRepo.FindAll(page, limit)
}

func (s *purchaseService) FindOne(id uuid.UUID) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return purchase, nil
}

// applyItems creates each line in input order and applies its stock
// increment, all inside the ambient transaction.
func (s *purchaseService) applyItems(tx *gorm.DB, purchaseID uuid.UUID, items []PurchaseItemInput) error {
	for i, input := range items {
		_, err := s.itemService.Create(tx, &CreatePurchaseItemInput{
			PurchaseID: purchaseID,
			ProductID:  input.ProductID,
			LineNo:     i + 1,
			Quantity:   input.Quantity,
			UnitPrice:  input.UnitPrice,
		})
		if err != nil {
			return err
		}
		if _, err := s.stockLedger.IncreaseStock(tx, input.ProductID, input.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *purchaseService) checkReferences(supplierID uuid.UUID, items []PurchaseItemInput) error {
	if err := s.checkSupplier(supplierID); err != nil {
		return err
	}
	return s.checkProducts(items)
}

func (s *purchaseService) checkSupplier(supplierID uuid.UUID) error {
	ok, err := s.supplierRepo.Exists(supplierID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: supplier %s", apperr.ErrReferentialViolation, supplierID)
	}
	return nil
}

func (s *purchaseService) checkProducts(items []PurchaseItemInput) error {
	for _, item := range items {
		ok, err := s.productRepo.Exists(item.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: product %s", apperr.ErrReferentialViolation, item.ProductID)
		}
	}
	return nil
}

func (s *purchaseService) broadcastStockEvent(action string, purchase *model.Purchase) {
	if s.wsHub == nil {
		return
	}
	go func() {
		payload := map[string]interface{}{
			"type":        "stock_update",
			"action":      action,
			"purchase_id": purchase.ID,
		}
		if len(purchase.PurchaseItems) > 0 {
			lines := make([]map[string]interface{}, 0, len(purchase.PurchaseItems))
			for _, item := range purchase.PurchaseItems {
				lines = append(lines, map[string]interface{}{
					"product_id": item.ProductID,
					"quantity":   item.Quantity,
				})
			}
			payload["items"] = lines
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func parsePurchaseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: purchase date must be a valid date (YYYY-MM-DD)", apperr.ErrInvalidInput)
	}
	// Both sides of the comparison live in UTC: the parsed input is UTC
	// midnight, so the bound must come from the UTC calendar date too.
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return time.Time{}, fmt.Errorf("%w: purchase date cannot be in the future", apperr.ErrInvalidInput)
	}
	return parsed, nil
}
