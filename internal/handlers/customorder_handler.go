package handlers

import (
	"log"

	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CustomOrderHandler handles bespoke arrangement requests and the employee
// queue that processes them.
type CustomOrderHandler struct {
	client   *upstream.Client
	validate *validator.Validate
}

// NewCustomOrderHandler creates a new CustomOrderHandler.
func NewCustomOrderHandler(client *upstream.Client) *CustomOrderHandler {
	return &CustomOrderHandler{
		client:   client,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the routes every authenticated user may call.
func (h *CustomOrderHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/custom-order", h.HandleCreate)
	router.Get("/custom-order/:id", h.HandleGet)
}

// RegisterStaffRoutes registers the employee queue routes.
func (h *CustomOrderHandler) RegisterStaffRoutes(router fiber.Router) {
	router.Get("/custom-orders", h.HandleList)
	router.Put("/custom-order/:id", h.HandleUpdateStatus)
	router.Delete("/custom-order/:id", h.HandleDelete)
}

// HandleCreate validates the custom-order form and forwards it with the
// optional reference image.
func (h *CustomOrderHandler) HandleCreate(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Expected multipart form data",
			"error":   err.Error(),
		})
	}
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	req := models.CustomOrderRequest{
		Username:      value("username"),
		Phone:         value("phone"),
		Email:         value("email"),
		Address:       value("address"),
		DeliveryDate:  value("deliveryDate"),
		FlowerType:    value("flowerType"),
		FlowerColor:   value("flowerColor"),
		Size:          value("size"),
		Arrangement:   value("arrangement"),
		Theme:         value("theme"),
		MessageCard:   value("messageCard"),
		PaymentMethod: value("paymentMethod"),
		Notes:         value("notes"),
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 && values[0] != "" {
			fields[key] = values[0]
		}
	}
	image, err := filePart(form, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid reference image upload",
			"error":   err.Error(),
		})
	}

	created, err := h.client.CreateCustomOrder(c.Context(), middleware.Token(c), fields, image)
	if err != nil {
		log.Printf("Error creating custom order: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Custom order submitted successfully",
		"data":    created,
	})
}

// HandleGet fetches one custom order.
func (h *CustomOrderHandler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	order, err := h.client.CustomOrderByID(c.Context(), middleware.Token(c), id)
	if err != nil {
		log.Printf("Error getting custom order %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": order})
}

// HandleList lists every custom order.
func (h *CustomOrderHandler) HandleList(c *fiber.Ctx) error {
	orders, err := h.client.CustomOrders(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error listing custom orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": orders})
}

// HandleUpdateStatus moves a custom order to a new status under the same
// forward-only lifecycle as checkouts.
func (h *CustomOrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}

	var updateData struct {
		Status models.Status `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing custom order status body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if !models.ValidStatus(updateData.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
			"error":   string(updateData.Status),
		})
	}

	token := middleware.Token(c)
	current, err := h.client.CustomOrderByID(c.Context(), token, id)
	if err != nil {
		log.Printf("Error getting custom order %d for status update: %v", id, err)
		return respondError(c, err)
	}
	if !models.CanTransition(current.Status, updateData.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status transition",
			"error":   string(current.Status) + " -> " + string(updateData.Status),
		})
	}

	if err := h.client.UpdateCustomOrderStatus(c.Context(), token, id, updateData.Status); err != nil {
		log.Printf("Error updating custom order %d status: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Custom order status updated successfully"})
}

// HandleDelete removes a custom order.
func (h *CustomOrderHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	if err := h.client.DeleteCustomOrder(c.Context(), middleware.Token(c), id); err != nil {
		log.Printf("Error deleting custom order %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Custom order deleted successfully"})
}
