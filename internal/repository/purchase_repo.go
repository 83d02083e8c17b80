package repository

import (
	"go-purchasing-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(tx *gorm.DB, purchase *model.Purchase) error
	FindAll(page, limit int) ([]model.Purchase, int64, error)
	FindByID(id uuid.UUID) (*model.Purchase, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error)
	Update(tx *gorm.DB, purchase *model.Purchase) error
	Delete(tx *gorm.DB, id uuid.UUID) error
}

type purchaseRepo struct {
	db *gorm.DB
}

func NewPurchaseRepo(db *gorm.DB) PurchaseRepository {
	return &purchaseRepo{db}
}

func (r *purchaseRepo) Create(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Create(purchase).Error
}

func (r *purchaseRepo) FindAll(page, limit int) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64
	if err := r.db.Model(&model.Purchase{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Supplier").
		Preload("PurchaseItems", itemOrder).
		Preload("PurchaseItems.Product").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at ASC").
		Find(&purchases).Error
	return purchases, total, err
}

func (r *purchaseRepo) FindByID(id uuid.UUID) (*model.Purchase, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *purchaseRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Purchase, error) {
	var purchase model.Purchase
	err := tx.Preload("Supplier").
		Preload("PurchaseItems", itemOrder).
		Preload("PurchaseItems.Product").
		First(&purchase, "id = ?", id).Error
	return &purchase, err
}

func (r *purchaseRepo) Update(tx *gorm.DB, purchase *model.Purchase) error {
	return tx.Model(&model.Purchase{}).
		Where("id = ?", purchase.ID).
		Updates(map[string]interface{}{
			"supplier_id":   purchase.SupplierID,
			"total_amount":  purchase.TotalAmount,
			"purchase_date": purchase.PurchaseDate,
		}).Error
}

func (r *purchaseRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Purchase{}, "id = ?", id).Error
}

// itemOrder preserves submitted line order on every preload
func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}
