package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-purchasing-api/internal/model"
	"go-purchasing-api/internal/repository"
	"go-purchasing-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
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
		&model.Supplier{},
		&model.Category{},
		&model.Product{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	productRepo := repository.NewProductRepo(db)
	purchaseService := service.NewPurchaseService(
		repository.NewPurchaseRepo(db),
		service.NewPurchaseItemService(repository.NewPurchaseItemRepo(db)),
		service.NewStockLedger(productRepo),
		repository.NewSupplierRepo(db),
		productRepo,
		db,
		log,
		nil,
	)

	app := fiber.New()
	h := NewPurchaseHandler(purchaseService)
	api := app.Group("/api/v1")
	api.Get("/purchases", h.GetPurchases)
	api.Get("/purchases/:id", h.GetPurchase)
	api.Post("/purchases", h.CreatePurchase)
	api.Put("/purchases/:id", h.UpdatePurchase)
	api.Delete("/purchases/:id", h.DeletePurchase)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func seedSupplierAndProduct(t *testing.T, db *gorm.DB) (*model.Supplier, *model.Product) {
	t.Helper()

	supplier := &model.Supplier{Name: "Acme", ContactInfo: "acme@example.com", Address: "1 Depot Rd"}
	if err := db.Create(supplier).Error; err != nil {
		t.Fatalf("seed supplier: %v", err)
	}
	product := &model.Product{
		Name:                 "Widget",
		SKU:                  "SKU-W",
		Price:                decimal.NewFromInt(100),
		InitialStockQuantity: 10,
		CurrentStockQuantity: 10,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return supplier, product
}

func TestCreatePurchaseEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	supplier, product := seedSupplierAndProduct(t, db)

	resp, body := doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"supplier_id":   supplier.ID,
		"total_amount":  "30.00",
		"purchase_date": time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 3, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %v)", resp.StatusCode, body)
	}

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data missing from envelope: %v", body)
	}
	if data["type"] != "purchase" {
		t.Errorf("resource type = %v, want purchase", data["type"])
	}
	attrs := data["attributes"].(map[string]interface{})
	if attrs["supplier_name"] != "Acme" {
		t.Errorf("supplier_name = %v, want Acme", attrs["supplier_name"])
	}
	items := attrs["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}

	var fresh model.Product
	if err := db.First(&fresh, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if fresh.CurrentStockQuantity != 13 {
		t.Errorf("stock = %d, want 13", fresh.CurrentStockQuantity)
	}
}

func TestCreatePurchaseEndpointValidation(t *testing.T) {
	app, db := newTestApp(t)
	supplier, _ := seedSupplierAndProduct(t, db)

	// Missing items fails validation before the service runs.
	resp, body := doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"supplier_id":   supplier.ID,
		"total_amount":  "10.00",
		"purchase_date": time.Now().UTC().Format("2006-01-02"),
	})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %v)", resp.StatusCode, body)
	}
	if errs, ok := body["errors"].([]interface{}); !ok || len(errs) == 0 {
		t.Errorf("errors block missing: %v", body)
	}

	var count int64
	if err := db.Model(&model.Purchase{}).Count(&count).Error; err != nil {
		t.Fatalf("count purchases: %v", err)
	}
	if count != 0 {
		t.Errorf("purchase rows = %d, want 0", count)
	}
}

func TestCreatePurchaseEndpointUnknownSupplier(t *testing.T) {
	app, db := newTestApp(t)
	_, product := seedSupplierAndProduct(t, db)

	resp, body := doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"supplier_id":   uuid.New(),
		"total_amount":  "10.00",
		"purchase_date": time.Now().UTC().Format("2006-01-02"),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 1, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %v)", resp.StatusCode, body)
	}
}

func TestUpdatePurchaseEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	supplier, product := seedSupplierAndProduct(t, db)

	resp, body := doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"supplier_id":   supplier.ID,
		"total_amount":  "30.00",
		"purchase_date": time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 3, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d (body %v)", resp.StatusCode, body)
	}
	id := body["data"].(map[string]interface{})["id"].(string)

	// The update runs its whole unit of work on the single pooled
	// connection, existence checks included.
	resp, body = doJSON(t, app, "PUT", "/api/v1/purchases/"+id, fiber.Map{
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 7, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %v)", resp.StatusCode, body)
	}

	var fresh model.Product
	if err := db.First(&fresh, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if fresh.CurrentStockQuantity != 17 {
		t.Errorf("stock = %d, want 17", fresh.CurrentStockQuantity)
	}

	// Replacing the supplier with an unknown one is rejected up front.
	resp, body = doJSON(t, app, "PUT", "/api/v1/purchases/"+id, fiber.Map{
		"supplier_id": uuid.New(),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 7, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("unknown supplier status = %d, want 422 (body %v)", resp.StatusCode, body)
	}
}

func TestListPurchasesClampsLimit(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", "/api/v1/purchases?limit=500", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", resp.StatusCode, body)
	}
	meta := body["meta"].(map[string]interface{})
	if got := meta["limit"].(float64); got != 100 {
		t.Errorf("limit = %v, want clamped to 100", got)
	}

	resp, body = doJSON(t, app, "GET", "/api/v1/purchases?limit=0&page=0", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	meta = body["meta"].(map[string]interface{})
	if got := meta["limit"].(float64); got != 15 {
		t.Errorf("limit = %v, want default 15", got)
	}
	if got := meta["page"].(float64); got != 1 {
		t.Errorf("page = %v, want 1", got)
	}
}

func TestGetPurchaseEndpointNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "GET", fmt.Sprintf("/api/v1/purchases/%s", uuid.New()), nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404 (body %v)", resp.StatusCode, body)
	}

	resp, _ = doJSON(t, app, "GET", "/api/v1/purchases/not-a-uuid", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("malformed id status = %d, want 400", resp.StatusCode)
	}
}

func TestDeletePurchaseEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	supplier, product := seedSupplierAndProduct(t, db)

	resp, body := doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"supplier_id":   supplier.ID,
		"total_amount":  "30.00",
		"purchase_date": time.Now().UTC().Format("2006-01-02"),
		"items": []fiber.Map{
			{"product_id": product.ID, "quantity": 3, "unit_price": "10.00"},
		},
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d (body %v)", resp.StatusCode, body)
	}
	id := body["data"].(map[string]interface{})["id"].(string)

	resp, _ = doJSON(t, app, "DELETE", "/api/v1/purchases/"+id, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	var fresh model.Product
	if err := db.First(&fresh, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if fresh.CurrentStockQuantity != 10 {
		t.Errorf("stock = %d, want reversed to 10", fresh.CurrentStockQuantity)
	}

	resp, _ = doJSON(t, app, "GET", "/api/v1/purchases/"+id, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}
