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
	"go.uber.org/zap"

	"github.com/alex-njugi/talex-app/internal/events"
	"github.com/alex-njugi/talex-app/internal/handler"
	"github.com/alex-njugi/talex-app/internal/repository"
	"github.com/alex-njugi/talex-app/internal/service"
	"github.com/alex-njugi/talex-app/pkg/config"
	"github.com/alex-njugi/talex-app/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.StorageBackend),
		zap.String("kafka_brokers", cfg.KafkaBrokers),
		zap.Bool("seed_demo_data", cfg.SeedDemoData))

	// Storage backend: in-process demo store, or DynamoDB.
	var (
		productStore repository.ProductStore
		orderStore   repository.OrderStore
		cartStore    repository.CartStore
		seeder       repository.Seeder
	)
	switch cfg.StorageBackend {
	case "memory":
		mem := repository.NewMemoryStore()
		productStore = mem
		orderStore = mem.Orders()
		cartStore = mem.Carts()
		seeder = mem
	case "dynamodb":
		dynamoClient, err := repository.NewDynamoDBClient(cfg)
		if err != nil {
			log.Fatal("Failed to create DynamoDB client:", err)
		}
		productRepo := repository.NewProductRepository(dynamoClient, cfg.ProductTableName)
		productStore = productRepo
		orderStore = repository.NewOrderRepository(dynamoClient, cfg.OrderTableName)
		cartStore = repository.NewCartRepository(dynamoClient, cfg.CartTableName)
		seeder = productRepo
	default:
		log.Fatal("Unknown storage backend: ", cfg.StorageBackend)
	}

	var producer events.Producer = events.NoopProducer{}
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err := events.NewKafkaProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			log.Fatal("Failed to create Kafka producer:", err)
		}
		producer = kafkaProducer
	}
	defer producer.Close()

	if cfg.SeedDemoData {
		if err := seeder.SeedIfEmpty(context.Background()); err != nil {
			logger.Error("Failed to seed demo data", zap.Error(err))
		}
	}

	catalogService := service.NewCatalogService(productStore, logger)
	cartService := service.NewCartService(cartStore, productStore, logger)
	orderService := service.NewOrderService(orderStore, productStore, cartStore, producer, logger)

	productHandler := handler.NewProductHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	orderHandler := handler.NewOrderHandler(orderService, seeder, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RequestID())

	// Routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", productHandler.ListProducts)
		v1.GET("/products/:id", productHandler.GetProduct)

		v1.GET("/carts/:id", cartHandler.GetCart)
		v1.POST("/carts/:id/items", cartHandler.AddItem)
		v1.PUT("/carts/:id/items/:productId", cartHandler.SetQuantity)
		v1.DELETE("/carts/:id/items/:productId", cartHandler.RemoveItem)
		v1.DELETE("/carts/:id", cartHandler.ClearCart)

		v1.POST("/orders", orderHandler.Checkout)
		v1.GET("/orders/:id", orderHandler.TrackOrder)

		admin := v1.Group("/admin")
		{
			admin.GET("/products", productHandler.AdminListProducts)
			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)

			admin.GET("/orders", orderHandler.AdminListOrders)
			admin.PATCH("/orders/:id/status", orderHandler.SetStatus)
			admin.PATCH("/orders/:id/payment", orderHandler.SetPayment)

			admin.POST("/seed", orderHandler.Seed)
		}

		v1.GET("/health", func(c *gin.Context) {
			status := gin.H{
				"status":  "healthy",
				"service": "talex-app",
				"backend": cfg.StorageBackend,
			}
			if err := producer.HealthCheck(); err != nil {
				status["kafka"] = "unhealthy"
				c.JSON(503, status)
				return
			}
			status["kafka"] = "healthy"
			c.JSON(200, status)
		})
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}
