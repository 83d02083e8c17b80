package handler

import (
	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GET /api/v1/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	products, total, err := h.service.FindAll(page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": productCollection(products),
		"meta": listMeta(page, limit, total),
	})
}

// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.service.FindOne(id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Product found", productResource(product))
}

// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	product, err := h.service.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Product created successfully", productResource(product))
}

// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	product, err := h.service.Update(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Product updated successfully", productResource(product))
}

// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	if err := h.service.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
