package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"florist/internal/middleware"
	"florist/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the parameterized list/filter/export screens and the
// financial report. One implementation replaces the near-identical pages it
// consolidates.
type AdminHandler struct {
	listing *services.ListingService
	report  *services.ReportService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(listing *services.ListingService, report *services.ReportService) *AdminHandler {
	return &AdminHandler{
		listing: listing,
		report:  report,
	}
}

// RegisterRoutes registers the screen and report routes.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/admin/:screen", h.HandleScreen)
	router.Get("/admin/:screen/export", h.HandleExport)
	router.Get("/laporan", h.HandleReport)
}

// HandleScreen returns a screen's rows. Without the refresh flag the rows
// come from the last stored snapshot and ?q= filters them in memory; with
// refresh=1 the collection is re-fetched first and a new snapshot stored.
func (h *AdminHandler) HandleScreen(c *fiber.Ctx) error {
	name := c.Params("screen")
	token := middleware.Token(c)

	var rows []services.Row
	var err error
	if c.QueryBool("refresh") {
		rows, err = h.listing.Refresh(c.Context(), token, name)
	} else {
		rows, err = h.listing.Latest(name)
		if err != nil && !errors.Is(err, services.ErrUnknownScreen) {
			// No snapshot yet: fall back to a fresh fetch.
			rows, err = h.listing.Refresh(c.Context(), token, name)
		}
	}
	if err != nil {
		if errors.Is(err, services.ErrUnknownScreen) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Unknown screen %q", name),
			})
		}
		log.Printf("Error loading screen %s: %v", name, err)
		return respondError(c, err)
	}

	screen, err := h.listing.Screen(name)
	if err != nil {
		return respondError(c, err)
	}
	filtered := h.listing.Filter(rows, c.Query("q"))
	return c.JSON(fiber.Map{
		"columns": screen.Columns,
		"rows":    filtered,
		"total":   len(rows),
	})
}

// HandleExport streams the filtered latest snapshot of a screen as CSV.
func (h *AdminHandler) HandleExport(c *fiber.Ctx) error {
	name := c.Params("screen")

	var buf bytes.Buffer
	err := h.listing.ExportCSV(&buf, name, c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownScreen):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Unknown screen %q", name),
			})
		case errors.Is(err, services.ErrEmptyExport):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Nothing to export",
				"error":   err.Error(),
			})
		default:
			log.Printf("Error exporting screen %s: %v", name, err)
			return respondError(c, err)
		}
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	return c.Send(buf.Bytes())
}

// HandleReport returns the monthly financial report.
func (h *AdminHandler) HandleReport(c *fiber.Ctx) error {
	report, err := h.report.Monthly(c.Context(), middleware.Token(c), c.Query("month"))
	if err != nil {
		log.Printf("Error building report: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": report})
}
