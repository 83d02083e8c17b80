package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name                 string          `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	SKU                  string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"sku" validate:"required,max=255"`
	Price                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	InitialStockQuantity int             `gorm:"not null" json:"initial_stock_quantity" validate:"min=0"`
	// CurrentStockQuantity is owned by the stock ledger. Nothing else writes it.
	CurrentStockQuantity int        `gorm:"not null;default:0" json:"current_stock_quantity"`
	CategoryID           *uuid.UUID `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category             *Category  `json:"category,omitempty" validate:"-"`
}
