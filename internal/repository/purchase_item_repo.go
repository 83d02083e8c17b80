package repository

import (
	"go-purchasing-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseItemRepository interface {
	Create(tx *gorm.DB, item *model.PurchaseItem) error
	FindAll(page, limit int) ([]model.PurchaseItem, int64, error)
	FindByID(id uuid.UUID) (*model.PurchaseItem, error)
	Update(item *model.PurchaseItem) error
	Delete(id uuid.UUID) error
	DeleteByPurchase(tx *gorm.DB, purchaseID uuid.UUID) error
}

type purchaseItemRepo struct {
	db *gorm.DB
}

func NewPurchaseItemRepo(db *gorm.DB) PurchaseItemRepository {
	return &purchaseItemRepo{db}
}

func (r *purchaseItemRepo) Create(tx *gorm.DB, item *model.PurchaseItem) error {
	return tx.Create(item).Error
}

func (r *purchaseItemRepo) FindAll(page, limit int) ([]model.PurchaseItem, int64, error) {
	var items []model.PurchaseItem
	var total int64
	if err := r.db.Model(&model.PurchaseItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Preload("Purchase.Supplier").Preload("Product").
		Offset((page - 1) * limit).Limit(limit).
		Order("created_at ASC").
		Find(&items).Error
	return items, total, err
}

func (r *purchaseItemRepo) FindByID(id uuid.UUID) (*model.PurchaseItem, error) {
	var item model.PurchaseItem
	err := r.db.Preload("Purchase.Supplier").Preload("Product").
		First(&item, "id = ?", id).Error
	return &item, err
}

func (r *purchaseItemRepo) Update(item *model.PurchaseItem) error {
	return r.db.Save(item).Error
}

func (r *purchaseItemRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.PurchaseItem{}, "id = ?", id).Error
}

// DeleteByPurchase removes every line of a purchase inside the caller's tx.
// Stock reversal must already have happened; this only drops the rows.
func (r *purchaseItemRepo) DeleteByPurchase(tx *gorm.DB, purchaseID uuid.UUID) error {
	return tx.Delete(&model.PurchaseItem{}, "purchase_id = ?", purchaseID).Error
}
