package handlers

import (
	"log"
	"strconv"

	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/upstream"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles login, registration, and profile round-trips. The
// backend issues the token; this handler only validates and forwards.
type AuthHandler struct {
	client   *upstream.Client
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(client *upstream.Client) *AuthHandler {
	return &AuthHandler{
		client:   client,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
	router.Post("/register", h.HandleRegister)
}

// RegisterProtectedRoutes registers the routes that need a bearer token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/me", h.HandleMe)
	router.Put("/edit/:id", h.HandleEditProfile)
}

// HandleLogin forwards credentials to the backend issuer and returns the
// token, role, and user id the browser keeps in storage.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	resp, err := h.client.Login(c.Context(), req)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(resp)
}

// HandleRegister validates the signup form and forwards it.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user, err := h.client.Register(c.Context(), req)
	if err != nil {
		log.Printf("Error registering user %s: %v", req.Username, err)
		return respondError(c, err)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleMe returns the account behind the bearer token.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.client.Me(c.Context(), middleware.Token(c))
	if err != nil {
		log.Printf("Error fetching profile: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

// HandleEditProfile round-trips the profile form to the backend.
func (h *AuthHandler) HandleEditProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user id",
		})
	}

	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(user); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.client.UpdateProfile(c.Context(), middleware.Token(c), uint(id), user); err != nil {
		log.Printf("Error updating profile %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}
