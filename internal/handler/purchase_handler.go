package handler

import (
	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

// GetPurchases returns a paginated listing with nested supplier and items
// GET /api/v1/purchases
func (h *PurchaseHandler) GetPurchases(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	purchases, total, err := h.service.FindAll(page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": purchaseCollection(purchases),
		"meta": listMeta(page, limit, total),
	})
}

// GetPurchase returns a single purchase
// GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetPurchase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}

	purchase, err := h.service.FindOne(id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Purchase found", purchaseResource(purchase))
}

// CreatePurchase stores a purchase with its items atomically
// POST /api/v1/purchases
func (h *PurchaseHandler) CreatePurchase(c *fiber.Ctx) error {
	var req service.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	purchase, err := h.service.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Purchase created successfully", purchaseResource(purchase))
}

// UpdatePurchase replaces the item list and reconciles stock
// PUT /api/v1/purchases/:id
func (h *PurchaseHandler) UpdatePurchase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}

	var req service.UpdatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	purchase, err := h.service.Update(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Purchase updated successfully", purchaseResource(purchase))
}

// DeletePurchase reverses stock and removes the purchase
// DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) DeletePurchase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}

	if err := h.service.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
