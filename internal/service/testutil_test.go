package service

import (
	"io"
	"testing"
	"time"

	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB gives each test its own in-memory database. A single pooled
// connection keeps every query on the one sqlite instance.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newPurchaseService wires the orchestrator with real repositories against db.
func newPurchaseService(t *testing.T, db *gorm.DB) PurchaseService {
	t.Helper()

	productRepo := repository.NewProductRepo(db)
	return NewPurchaseService(
		repository.NewPurchaseRepo(db),
		NewPurchaseItemService(repository.NewPurchaseItemRepo(db)),
		NewStockLedger(productRepo),
		repository.NewSupplierRepo(db),
		productRepo,
		db,
		testLogger(),
		nil,
	)
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *model.Supplier {
	t.Helper()

	supplier := &model.Supplier{Name: name, ContactInfo: "test@suppliers.example", Address: "1 Depot Rd"}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, initialStock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:                 "Product " + sku,
		SKU:                  sku,
		Price:                decimal.NewFromInt(100),
		InitialStockQuantity: initialStock,
		CurrentStockQuantity: initialStock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func currentStock(t *testing.T, db *gorm.DB, product *model.Product) int {
	t.Helper()

	var fresh model.Product
	if err := db.First(&fresh, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return fresh.CurrentStockQuantity
}
