package handler

import (
	"errors"
	"fmt"

	"go-purchasing-api/internal/apperr"
	"go-purchasing-api/internal/model"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// success wraps a payload in the standard success envelope.
func success(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"data":    data,
		"status":  status,
	})
}

// failure renders the standard error envelope with one or more messages.
func failure(c *fiber.Ctx, status int, message string, details ...string) error {
	errs := make([]fiber.Map, 0, len(details))
	for _, d := range details {
		errs = append(errs, fiber.Map{"message": d})
	}
	if len(errs) == 0 {
		errs = append(errs, fiber.Map{"message": message})
	}
	return c.Status(status).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"errors":  errs,
	})
}

// validationFailure maps validator results onto the 422 envelope.
func validationFailure(c *fiber.Ctx, errs []*validator.ErrorResponse) error {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Message
	}
	return failure(c, fiber.StatusUnprocessableEntity, "Validation failed", messages...)
}

// serviceError maps the service error kinds onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case apperr.IsInsufficientStock(err):
		return failure(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return failure(c, fiber.StatusNotFound, "Record not found")
	case errors.Is(err, apperr.ErrReferentialViolation):
		return failure(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperr.ErrInvalidInput):
		return failure(c, fiber.StatusBadRequest, err.Error())
	default:
		return failure(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

// listMeta is the pagination block attached to index responses.
func listMeta(page, limit int, total int64) fiber.Map {
	return fiber.Map{
		"page":  page,
		"limit": limit,
		"total": total,
	}
}

// pageParams reads page/limit query params with the defaults the listing
// endpoints use.
func pageParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 15)
	if limit < 1 {
		limit = 15
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// Resource shaping: {type, id, attributes, links.self}.

func purchaseResource(p *model.Purchase) fiber.Map {
	attributes := fiber.Map{
		"supplier_id":   p.SupplierID,
		"total_amount":  p.TotalAmount,
		"purchase_date": p.PurchaseDate.Format("2006-01-02"),
		"items":         purchaseItemCollection(p.PurchaseItems),
		"createdAt":     p.CreatedAt,
		"updatedAt":     p.UpdatedAt,
	}
	if p.Supplier != nil {
		attributes["supplier_name"] = p.Supplier.Name
	}
	return fiber.Map{
		"type":       "purchase",
		"id":         p.ID,
		"attributes": attributes,
		"links": fiber.Map{
			"self": fmt.Sprintf("/api/v1/purchases/%s", p.ID),
		},
	}
}

func purchaseCollection(purchases []model.Purchase) []fiber.Map {
	out := make([]fiber.Map, len(purchases))
	for i := range purchases {
		out[i] = purchaseResource(&purchases[i])
	}
	return out
}

func purchaseItemResource(item *model.PurchaseItem) fiber.Map {
	attributes := fiber.Map{
		"purchase_id": item.PurchaseID,
		"product_id":  item.ProductID,
		"quantity":    item.Quantity,
		"unit_price":  item.UnitPrice,
		"total_price": item.TotalPrice,
	}
	if item.Product != nil {
		attributes["product_name"] = item.Product.Name
	}
	return fiber.Map{
		"type":       "purchase_item",
		"id":         item.ID,
		"attributes": attributes,
	}
}

func purchaseItemCollection(items []model.PurchaseItem) []fiber.Map {
	out := make([]fiber.Map, len(items))
	for i := range items {
		out[i] = purchaseItemResource(&items[i])
	}
	return out
}

func productResource(p *model.Product) fiber.Map {
	attributes := fiber.Map{
		"name":                   p.Name,
		"sku":                    p.SKU,
		"price":                  p.Price,
		"initial_stock_quantity": p.InitialStockQuantity,
		"current_stock_quantity": p.CurrentStockQuantity,
		"category_id":            p.CategoryID,
		"createdAt":              p.CreatedAt,
		"updatedAt":              p.UpdatedAt,
	}
	if p.Category != nil {
		attributes["category_name"] = p.Category.Name
	}
	return fiber.Map{
		"type":       "product",
		"id":         p.ID,
		"attributes": attributes,
		"links": fiber.Map{
			"self": fmt.Sprintf("/api/v1/products/%s", p.ID),
		},
	}
}

func productCollection(products []model.Product) []fiber.Map {
	out := make([]fiber.Map, len(products))
	for i := range products {
		out[i] = productResource(&products[i])
	}
	return out
}

func categoryResource(cat *model.Category) fiber.Map {
	return fiber.Map{
		"type": "category",
		"id":   cat.ID,
		"attributes": fiber.Map{
			"name":      cat.Name,
			"createdAt": cat.CreatedAt,
			"updatedAt": cat.UpdatedAt,
		},
		"links": fiber.Map{
			"self": fmt.Sprintf("/api/v1/categories/%s", cat.ID),
		},
	}
}

func categoryCollection(categories []model.Category) []fiber.Map {
	out := make([]fiber.Map, len(categories))
	for i := range categories {
		out[i] = categoryResource(&categories[i])
	}
	return out
}

func supplierResource(s *model.Supplier) fiber.Map {
	return fiber.Map{
		"type": "supplier",
		"id":   s.ID,
		"attributes": fiber.Map{
			"name":         s.Name,
			"contact_info": s.ContactInfo,
			"address":      s.Address,
			"createdAt":    s.CreatedAt,
			"updatedAt":    s.UpdatedAt,
		},
		"links": fiber.Map{
			"self": fmt.Sprintf("/api/v1/suppliers/%s", s.ID),
		},
	}
}

func supplierCollection(suppliers []model.Supplier) []fiber.Map {
	out := make([]fiber.Map, len(suppliers))
	for i := range suppliers {
		out[i] = supplierResource(&suppliers[i])
	}
	return out
}
