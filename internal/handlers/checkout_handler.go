package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/services"
	"florist/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles order submission and the order lifecycle. The
// browser sends ONE request carrying all line items; the per-line fan-out to
// the backend happens in the checkout service.
type CheckoutHandler struct {
	client   *upstream.Client
	checkout *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(client *upstream.Client, checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		client:   client,
		checkout: checkout,
	}
}

// RegisterRoutes registers the routes every authenticated user may call.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/checkout", h.HandleSubmit)
	router.Get("/checkout/:id", h.HandleGetCheckout)
}

// RegisterStaffRoutes registers the order-management routes for admin and
// employee roles.
func (h *CheckoutHandler) RegisterStaffRoutes(router fiber.Router) {
	router.Get("/checkouts", h.HandleListCheckouts)
	router.Put("/checkout/:id", h.HandleUpdateStatus)
	router.Delete("/checkout/:id", h.HandleDeleteCheckout)
}

// HandleSubmit runs the full checkout flow: parse the multipart form,
// resolve the order lines ("buy now" items from the form, otherwise the
// user's cart), validate, fan out to the backend, and return the created
// order ids. The first order id drives the payment-view navigation.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
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

	checkoutForm := services.CheckoutForm{
		ReceiverName:   value("receiver_name"),
		Phone:          value("phone"),
		Address:        value("address"),
		DeliveryDate:   value("delivery_date"),
		DeliveryTime:   value("delivery_time"),
		ShippingMethod: value("shipping_method"),
		PaymentMethod:  value("payment_method"),
		PayerName:      value("payer_name"),
	}
	if checkoutForm.ShippingMethod == "" {
		checkoutForm.ShippingMethod = models.ShippingDelivery
	}

	token := middleware.Token(c)

	var lines []services.CheckoutLine
	if itemsJSON := value("items"); itemsJSON != "" {
		var reqs []models.AddCartRequest
		if err := json.Unmarshal([]byte(itemsJSON), &reqs); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid items field",
				"error":   err.Error(),
			})
		}
		lines, err = h.checkout.LinesFromRequests(c.Context(), reqs)
	} else {
		lines, err = h.checkout.LinesFromCart(c.Context(), token)
	}
	if err != nil {
		log.Printf("Error resolving checkout lines: %v", err)
		return respondError(c, err)
	}

	proof, err := readProof(form)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid proof of transfer upload",
			"error":   err.Error(),
		})
	}

	result, err := h.checkout.Submit(c.Context(), token, lines, checkoutForm, proof)
	if err != nil {
		log.Printf("Checkout submission failed: %v", err)
		if result != nil && len(result.OrderIDs) > 0 {
			// Partial failure: some orders exist. Report it instead of
			// pretending the submission succeeded.
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"message": "Checkout partially failed",
				"error":   err.Error(),
				"data":    result,
			})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Order submitted successfully",
		"data":    result,
	})
}

// HandleGetCheckout fetches one order for the payment detail view.
func (h *CheckoutHandler) HandleGetCheckout(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	checkout, err := h.client.CheckoutByID(c.Context(), middleware.Token(c), id)
	if err != nil {
		log.Printf("Error getting checkout %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": checkout})
}

// HandleListCheckouts lists every order.
func (h *CheckoutHandler) HandleListCheckouts(c *fiber.Ctx) error {
	checkouts, err := h.client.Checkouts(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error listing checkouts: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": checkouts})
}

// HandleUpdateStatus moves an order to a new status, rejecting transitions
// the lifecycle does not allow: orders only move forward through
// pending -> processing -> completed, or to cancelled.
func (h *CheckoutHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}

	var updateData struct {
		Status models.Status `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing status update body: %v", err)
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
	current, err := h.client.CheckoutByID(c.Context(), token, id)
	if err != nil {
		log.Printf("Error getting checkout %d for status update: %v", id, err)
		return respondError(c, err)
	}
	if !models.CanTransition(current.Status, updateData.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status transition",
			"error":   string(current.Status) + " -> " + string(updateData.Status),
		})
	}

	if err := h.client.UpdateCheckoutStatus(c.Context(), token, id, updateData.Status); err != nil {
		log.Printf("Error updating checkout %d status: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
	})
}

// HandleDeleteCheckout removes an order.
func (h *CheckoutHandler) HandleDeleteCheckout(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	if err := h.client.DeleteCheckout(c.Context(), middleware.Token(c), id); err != nil {
		log.Printf("Error deleting checkout %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Order deleted successfully"})
}

// readProof buffers the uploaded proof-of-transfer file, if any. Buffering
// lets the fan-out attach the same file to every order line.
func readProof(form *multipart.Form) (*services.ProofOfTransfer, error) {
	headers := form.File["proof_of_transfer"]
	if len(headers) == 0 {
		return nil, nil
	}
	file, err := headers[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open proof of transfer: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read proof of transfer: %w", err)
	}
	return &services.ProofOfTransfer{
		Filename: headers[0].Filename,
		Data:     data,
	}, nil
}
