package handler

import (
	"errors"

	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/v1/users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	users, total, err := h.userService.FindAll(page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"data": users,
		"meta": listMeta(page, limit, total),
	})
}

// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userService.FindOne(id)
	if err != nil {
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "User found", user)
}

// POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return failure(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "User created successfully", user.ToResponse())
}

// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return failure(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return serviceError(c, err)
	}
	return success(c, fiber.StatusOK, "User updated successfully", user.ToResponse())
}

// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.userService.Delete(id); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
