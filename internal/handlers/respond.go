package handlers

import (
	"errors"
	"fmt"
	"log"

	"florist/internal/services"
	"florist/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the error kinds of the flow (validation failure, backend
// 401, not found, everything else) onto one response shape. The 401 branch is
// the single place the logout-and-redirect signal is produced.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidForm):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.Is(err, upstream.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Session expired, please log in again",
			"relogin": true,
		})
	case errors.Is(err, upstream.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Backend request failed",
			"error":   err.Error(),
		})
	}
}

// respondValidationErrors renders validator failures field by field, the same
// shape for every form in the gateway.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		log.Printf("Unexpected validation error type: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
