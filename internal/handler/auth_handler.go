package handler

import (
	"errors"

	"go-purchasing-api/internal/service"
	"go-purchasing-api/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/v1/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return failure(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return serviceError(c, err)
	}
	return success(c, fiber.StatusCreated, "User created successfully", result)
}

// POST /api/v1/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid JSON")
	}

	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return validationFailure(c, errs)
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		return failure(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	return success(c, fiber.StatusOK, "Authenticated", result)
}

// POST /api/v1/logout
// Tokens are stateless; logout just acknowledges so clients can drop theirs.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, "Logged out", nil)
}
