package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Purchase struct {
	BaseModel
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier     *Supplier       `json:"supplier,omitempty"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PurchaseDate time.Time       `gorm:"type:date;not null" json:"purchase_date"`

	// Items keep their submitted order via LineNo so an update can
	// replay the exact stock effects it has to reverse.
	PurchaseItems []PurchaseItem `json:"purchase_items,omitempty"`
}

type PurchaseItem struct {
	BaseModel
	PurchaseID uuid.UUID `gorm:"type:uuid;not null;index" json:"purchase_id"`
	Purchase   *Purchase `json:"purchase,omitempty"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product    *Product  `json:"product,omitempty"`
	LineNo     int       `gorm:"not null" json:"line_no"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	// TotalPrice is always quantity * unit_price, computed server side.
	TotalPrice decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_price"`
}
