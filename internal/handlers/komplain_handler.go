package handlers

import (
	"log"

	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// KomplainHandler handles customer complaints and the employee attendance
// records.
type KomplainHandler struct {
	client   *upstream.Client
	validate *validator.Validate
}

// NewKomplainHandler creates a new KomplainHandler.
func NewKomplainHandler(client *upstream.Client) *KomplainHandler {
	return &KomplainHandler{
		client:   client,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the complaint route every user may call.
func (h *KomplainHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/komplain", h.HandleCreateKomplain)
}

// RegisterAdminRoutes registers the complaint listing.
func (h *KomplainHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/komplain", h.HandleListKomplains)
}

// RegisterKaryawanRoutes registers the attendance routes.
func (h *KomplainHandler) RegisterKaryawanRoutes(router fiber.Router) {
	router.Get("/absen", h.HandleListAbsens)
	router.Post("/checkin", h.HandleCheckIn)
	router.Patch("/absen/:id", h.HandleCheckOut)
}

// HandleCreateKomplain files a complaint for the authenticated user.
func (h *KomplainHandler) HandleCreateKomplain(c *fiber.Ctx) error {
	var req models.KomplainRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing komplain body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.client.CreateKomplain(c.Context(), middleware.Token(c), req); err != nil {
		log.Printf("Error filing komplain: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Complaint submitted successfully",
	})
}

// HandleListKomplains lists every complaint.
func (h *KomplainHandler) HandleListKomplains(c *fiber.Ctx) error {
	komplains, err := h.client.Komplains(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error listing komplains: %v", err)
		return respondError(c, err)
	}
	return c.JSON(komplains)
}

// HandleListAbsens lists the employee's attendance records.
func (h *KomplainHandler) HandleListAbsens(c *fiber.Ctx) error {
	absens, err := h.client.Absens(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error listing absens: %v", err)
		return respondError(c, err)
	}
	return c.JSON(absens)
}

// HandleCheckIn clocks the employee in.
func (h *KomplainHandler) HandleCheckIn(c *fiber.Ctx) error {
	var req models.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing check-in body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.client.CheckIn(c.Context(), middleware.Token(c), req); err != nil {
		log.Printf("Error checking in: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Checked in successfully",
	})
}

// HandleCheckOut clocks the employee out.
func (h *KomplainHandler) HandleCheckOut(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}

	var req models.CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing check-out body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.client.CheckOut(c.Context(), middleware.Token(c), id, req); err != nil {
		log.Printf("Error checking out absen %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checked out successfully"})
}
