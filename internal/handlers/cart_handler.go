package handlers

import (
	"log"

	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/services"
	"florist/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the user's cart. Adding a line enforces the
// size/quantity selector rules before anything reaches the backend.
type CartHandler struct {
	client   *upstream.Client
	checkout *services.CheckoutService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(client *upstream.Client, checkout *services.CheckoutService) *CartHandler {
	return &CartHandler{
		client:   client,
		checkout: checkout,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cart", h.HandleGetCart)
	router.Post("/cart", h.HandleAddToCart)
	router.Delete("/hapus/:id", h.HandleDeleteCartItem)
}

// HandleGetCart returns the authenticated user's cart lines.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	items, err := h.client.CartItems(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleAddToCart validates a new cart line against the product's available
// sizes and the quantity bound, then forwards it.
func (h *CartHandler) HandleAddToCart(c *fiber.Ctx) error {
	var req models.AddCartRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	// Runs the selector rules: the size must be one of the product's
	// available sizes and the quantity within [1, min(10, stock)].
	if _, err := h.checkout.LinesFromRequests(c.Context(), []models.AddCartRequest{req}); err != nil {
		log.Printf("Rejected cart line for product %d: %v", req.ProductID, err)
		return respondError(c, err)
	}

	if err := h.client.AddCartItem(c.Context(), middleware.Token(c), req); err != nil {
		log.Printf("Error adding cart line for product %d: %v", req.ProductID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
	})
}

// HandleDeleteCartItem removes a cart line.
func (h *CartHandler) HandleDeleteCartItem(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	if err := h.client.DeleteCartItem(c.Context(), middleware.Token(c), id); err != nil {
		log.Printf("Error deleting cart item %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}
