package handler

import (
	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

// GET /api/v1/categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	categories, total, err := h.service.FindAll(page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": categoryCollection(categories),
		"meta": listMeta(page, limit, total),
	})
}

// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	category, err := h.service.FindOne(id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Category found", categoryResource(category))
}

// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	category, err := h.service.Create(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "Category created successfully", categoryResource(category))
}

// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	var req service.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	category, err := h.service.Update(id, &req)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "Category updated successfully", categoryResource(category))
}

// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid category ID")
	}

	if err := h.service.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
