package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/config"
	"warehouse-service/internal/events"
	"warehouse-service/internal/handlers"
	"warehouse-service/internal/middleware"
	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
	"warehouse-service/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logrus logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Sku{},
		&models.Inventory{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize NATS event publisher (optional - graceful degradation if NATS unavailable)
	var publisher *events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("Warning: Failed to initialize NATS event publisher: %v", err)
			log.Println("Continuing without event publishing...")
			publisher = nil
		} else {
			log.Println("✓ Connected to NATS JetStream for event publishing")
			defer publisher.Close()
		}
	} else {
		log.Println("NATS_URL not configured, event publishing disabled")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	skuRepo := repository.NewSkuRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db, cfg.OrderIDScope)

	// Initialize services
	mapper := services.NewFieldMapper()
	detector := services.NewDetector()
	resolver := services.NewSkuResolver(skuRepo, productRepo, inventoryRepo)
	importService := services.NewImportService(mapper, resolver, productRepo, skuRepo, inventoryRepo, orderRepo, publisher, logger)
	productService := services.NewProductService(productRepo, skuRepo, inventoryRepo, orderRepo, logger)
	skuService := services.NewSkuService(skuRepo, productRepo, inventoryRepo, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, publisher, logger)
	orderService := services.NewOrderService(orderRepo, skuRepo, productRepo, logger)
	dashboardService := services.NewDashboardService(productRepo, skuRepo, inventoryRepo, orderRepo)

	// Staged upload cache with periodic eviction
	fileCache := services.NewFileCache(cfg.UploadTTL, nil, logger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fileCache.StartSweeper(ctx, time.Minute)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	importHandler := handlers.NewImportHandler(fileCache, detector, importService)
	productHandler := handlers.NewProductHandler(productService, cfg)
	skuHandler := handlers.NewSkuHandler(skuService, cfg)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Health check endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	api := router.Group("/api")

	// Product routes
	products := api.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/categories", productHandler.Categories)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	// SKU mapping routes
	skus := api.Group("/skus")
	{
		skus.POST("", skuHandler.Create)
		skus.GET("", skuHandler.List)
		skus.GET("/resolve", skuHandler.Resolve)
		skus.POST("/bulk", skuHandler.Bulk)
		skus.GET("/:id", skuHandler.Get)
		skus.PUT("/:id", skuHandler.Update)
		skus.DELETE("/:id", skuHandler.Delete)
	}

	// Inventory routes
	inventory := api.Group("/inventory")
	{
		inventory.GET("", inventoryHandler.List)
		inventory.GET("/summary", inventoryHandler.Summary)
		inventory.GET("/product/:productId", inventoryHandler.ListByProduct)
		inventory.GET("/msku/:msku", inventoryHandler.ListByMSKU)
		inventory.PUT("/bulk", inventoryHandler.Bulk)
		inventory.GET("/:id", inventoryHandler.Get)
		inventory.PUT("/:id", inventoryHandler.Update)
		inventory.PUT("/:id/adjust", inventoryHandler.Adjust)
	}

	// Order routes
	orders := api.Group("/orders")
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id", orderHandler.Update)
		orders.PUT("/:id/status", orderHandler.UpdateStatus)
		orders.PUT("/:id/shipping", orderHandler.UpdateShipping)
		orders.DELETE("/:id", orderHandler.Delete)
	}

	// Import routes
	imports := api.Group("/import")
	{
		imports.POST("/upload", importHandler.Upload)
		imports.POST("/detect", importHandler.Detect)
		imports.POST("/process", importHandler.Process)
		imports.GET("/template", importHandler.Template)
	}

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/summary", dashboardHandler.Summary)
		dashboard.GET("/low-stock", dashboardHandler.LowStock)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting warehouse service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}
	logger.Info("Server exited")
}
