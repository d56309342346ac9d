package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"strconv"

	"florist/internal/middleware"
	"florist/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler handles the product catalogue: public browsing and search,
// and the admin CRUD behind it.
type CatalogHandler struct {
	client *upstream.Client
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(client *upstream.Client) *CatalogHandler {
	return &CatalogHandler{client: client}
}

// RegisterRoutes registers the public catalogue routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/produk", h.HandleListProducts)
	router.Get("/produk/:id", h.HandleGetProduct)
	router.Get("/search", h.HandleSearch)
}

// RegisterAdminRoutes registers the product CRUD routes.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/produk", h.HandleCreateProduct)
	router.Put("/produk/:id", h.HandleUpdateProduct)
	router.Delete("/produk/:id", h.HandleDeleteProduct)
}

// HandleListProducts lists the catalogue, optionally by category.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.client.Products(c.Context(), "", c.Query("kategori"))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProduct fetches a single product.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	product, err := h.client.ProductByID(c.Context(), id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleSearch runs the keyword search.
func (h *CatalogHandler) HandleSearch(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "keyword query parameter is required",
		})
	}
	products, err := h.client.Search(c.Context(), keyword)
	if err != nil {
		log.Printf("Error searching products for %q: %v", keyword, err)
		return respondError(c, err)
	}
	return c.JSON(products)
}

// HandleCreateProduct forwards the multipart product form, image included.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	fields, image, err := productForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product form",
			"error":   err.Error(),
		})
	}

	product, err := h.client.CreateProduct(c.Context(), middleware.Token(c), fields, image)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// HandleUpdateProduct forwards a multipart product update.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	fields, image, err := productForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product form",
			"error":   err.Error(),
		})
	}

	if err := h.client.UpdateProduct(c.Context(), middleware.Token(c), id, fields, image); err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated successfully"})
}

// HandleDeleteProduct removes a product.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondInvalidID(c, err)
	}
	if err := h.client.DeleteProduct(c.Context(), middleware.Token(c), id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// productForm collects the text fields and optional image file from a
// multipart product submission.
func productForm(c *fiber.Ctx) (map[string]string, *upstream.FilePart, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("expected multipart form data: %w", err)
	}

	fields := make(map[string]string, len(form.Value))
	for key, values := range form.Value {
		if len(values) > 0 && values[0] != "" {
			fields[key] = values[0]
		}
	}

	image, err := filePart(form, "file")
	if err != nil {
		return nil, nil, err
	}
	return fields, image, nil
}

// filePart opens the first uploaded file under field, nil if absent.
func filePart(form *multipart.Form, field string) (*upstream.FilePart, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	file, err := headers[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	return &upstream.FilePart{
		Field:    field,
		Filename: headers[0].Filename,
		Content:  file,
	}, nil
}

// parseID reads the numeric :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}

// respondInvalidID renders the 400 for a malformed :id parameter.
func respondInvalidID(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid id",
		"error":   err.Error(),
	})
}
