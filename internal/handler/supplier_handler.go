package handler

import (
	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

// GET /api/v1/suppliers
func (h *SupplierHandler) GetSuppliers(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	suppliers, total, err := h.service.FindAll(page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": supplierCollection(suppliers),
		"meta": listMeta(page, limit, total),
	})
}

// GET /api/v1/suppliers/:id
func (h *SupplierHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}

	supplier, err := h.service.FindOne(id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Supplier found", supplierResource(supplier))
}

// POST /api/v1/suppliers
func (h *SupplierHandler) CreateSupplier(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	supplier, err := h.service.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Supplier created successfully", supplierResource(supplier))
}

// PUT /api/v1/suppliers/:id
func (h *SupplierHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}

	var req service.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	supplier, err := h.service.Update(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Supplier updated successfully", supplierResource(supplier))
}

// DELETE /api/v1/suppliers/:id
func (h *SupplierHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}

	if err := h.service.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
