package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sseleimend/e-commerce/internal/config"
	"github.com/sseleimend/e-commerce/internal/handlers"
	"github.com/sseleimend/e-commerce/internal/middleware"
	"github.com/sseleimend/e-commerce/internal/repositories/mongodb"
	"github.com/sseleimend/e-commerce/internal/services"
	"github.com/sseleimend/e-commerce/pkg/cache"
	"github.com/sseleimend/e-commerce/pkg/database"
	"github.com/sseleimend/e-commerce/pkg/logger"
	"github.com/sseleimend/e-commerce/pkg/payment"
	"github.com/sseleimend/e-commerce/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to MongoDB and apply schema migrations
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Database)
	if err := migrator.Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to Redis
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Select the payment provider
	var provider payment.CheckoutProvider
	switch cfg.Payment.DefaultProvider {
	case "razorpay":
		provider = payment.NewRazorpayProvider(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret)
	default:
		provider = payment.NewStripeProvider(cfg.Payment.Stripe.SecretKey)
	}

	// Initialize repositories
	productRepo := mongodb.NewProductRepository(db.Database)
	couponRepo := mongodb.NewCouponRepository(db.Database)
	orderRepo := mongodb.NewOrderRepository(db.Database)
	cartRepo := mongodb.NewCartRepository(db.Database)

	// Initialize services
	productService := services.NewProductService(productRepo, redisCache, appLogger)
	couponService := services.NewCouponService(couponRepo, appLogger)
	cartService := services.NewCartService(cartRepo, productRepo)
	checkoutService := services.NewCheckoutService(couponService, couponRepo, orderRepo, provider, cfg, appLogger)
	analyticsService := services.NewAnalyticsService(orderRepo)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	couponHandler := handlers.NewCouponHandler(couponService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, productService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Initialize Gin router
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	// API routes
	jwtSecret := cfg.Security.JWTSecret
	v1 := router.Group("/api/v1")
	{
		routes.SetupProductRoutes(v1, productHandler, jwtSecret)
		routes.SetupCouponRoutes(v1, couponHandler, jwtSecret)
		routes.SetupCartRoutes(v1, cartHandler, jwtSecret)
		routes.SetupCheckoutRoutes(v1, checkoutHandler, jwtSecret)
		routes.SetupAnalyticsRoutes(v1, analyticsHandler, jwtSecret)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"version": cfg.App.Version,
		}
		if err := db.Ping(); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["mongodb"] = err.Error()
		}
		if err := redisCache.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
			health["redis"] = err.Error()
		}
		c.JSON(status, health)
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	appLogger.Infof("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server exited: %v", err)
	}
}
