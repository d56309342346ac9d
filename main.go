package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"florist/internal/config"
	"florist/internal/handlers"
	"florist/internal/middleware"
	"florist/internal/models"
	"florist/internal/repositories"
	"florist/internal/services"
	"florist/internal/upstream"
	"florist/pkg/rabbitmq"
)

// NewApp wires the gateway together: upstream client, snapshot store,
// services, handlers, and routes. events may be nil, in which case checkout
// events are not published.
func NewApp(cfg config.Config, events services.EventPublisher) (*fiber.App, error) {
	// --- Upstream Client ---
	client := upstream.NewClient(cfg.UpstreamURL)

	// --- Snapshot Store ---
	// Admin screens filter and export over the last stored snapshot, so the
	// snapshots live in a local database rather than in backend round-trips.
	snapshotRepo, err := newSnapshotRepository(cfg)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	checkoutService := services.NewCheckoutService(client, events, cfg.ShippingCostHome)
	listingService := services.NewListingService(snapshotRepo, cfg.CSVDelimiter)
	services.RegisterScreens(listingService, client)
	reportService := services.NewReportService(client)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(client)
	catalogHandler := handlers.NewCatalogHandler(client)
	cartHandler := handlers.NewCartHandler(client, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(client, checkoutService)
	customOrderHandler := handlers.NewCustomOrderHandler(client)
	komplainHandler := handlers.NewKomplainHandler(client)
	adminHandler := handlers.NewAdminHandler(listingService, reportService)

	// --- Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	api := app.Group("/api")

	// Public routes: login, register, and the catalog browse/search surface.
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)

	// Authenticated routes: everything past the catalog needs a bearer token.
	authed := api.Group("", middleware.TokenRequired())
	authHandler.RegisterProtectedRoutes(authed)
	cartHandler.RegisterRoutes(authed)
	checkoutHandler.RegisterRoutes(authed)
	customOrderHandler.RegisterRoutes(authed)
	komplainHandler.RegisterRoutes(authed)

	// Staff routes: order management and the financial report.
	staff := authed.Group("", middleware.RequireRole(models.RoleAdmin, models.RoleKaryawan))
	checkoutHandler.RegisterStaffRoutes(staff)
	customOrderHandler.RegisterStaffRoutes(staff)
	adminHandler.RegisterRoutes(staff)

	// Admin-only routes: catalog management and the complaint inbox.
	admin := authed.Group("", middleware.RequireRole(models.RoleAdmin))
	catalogHandler.RegisterAdminRoutes(admin)
	komplainHandler.RegisterAdminRoutes(admin)

	// Employee routes: attendance.
	karyawan := authed.Group("", middleware.RequireRole(models.RoleKaryawan))
	komplainHandler.RegisterKaryawanRoutes(karyawan)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"upstream": cfg.UpstreamURL,
		})
	})

	return app, nil
}

// newSnapshotRepository opens the snapshot database per configuration and
// migrates the schema.
func newSnapshotRepository(cfg config.Config) (repositories.SnapshotRepository, error) {
	var dialector gorm.Dialector
	switch cfg.SnapshotDriver {
	case "postgres":
		dialector = postgres.Open(cfg.SnapshotDSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.SnapshotDSN)
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", cfg.SnapshotDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	if err := db.AutoMigrate(&models.Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot database: %w", err)
	}
	return repositories.NewGORMSnapshotRepository(db), nil
}

func main() {
	cfg := config.Load()

	// --- Initialize RabbitMQ Client ---
	// The broker is optional: a failed connection degrades to a gateway that
	// skips event publication rather than refusing to start.
	var events services.EventPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, checkout events disabled: %v", err)
	} else {
		defer mqClient.Close()
		events = mqClient
	}

	app, err := NewApp(cfg, events)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// The gateway's own consumer just logs checkout events; downstream
	// services (notifications, fulfilment) attach their own consumers.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for checkout events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received checkout event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeCheckoutEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
