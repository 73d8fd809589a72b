package main

import (
	"net/http"

	"pos-service/internal/auth"
	"pos-service/internal/handler"
	mid "pos-service/internal/middleware"
	"pos-service/internal/service"
	"pos-service/pkg/config"
	"pos-service/pkg/database"
	"pos-service/pkg/jwtutil"
	"pos-service/pkg/logger"
	"pos-service/pkg/notify"
	"pos-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("pos-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting pos-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")
	db := database.GetDB()

	// Stock event notifier; without a broker events are dropped
	var notifier notify.Notifier = notify.NopNotifier{}
	if appConfig.Kafka.Broker != "" {
		notifier = notify.NewKafkaNotifier(appConfig.Kafka.Broker, appConfig.Kafka.Topic, log)
		log.Info("Kafka notifier initialized",
			zap.String("broker", appConfig.Kafka.Broker),
			zap.String("topic", appConfig.Kafka.Topic))
	}
	defer notifier.Close()

	// Services
	orderService := service.NewOrderService(db, log, notifier)
	refundService := service.NewRefundService(db, log, notifier)

	// Handlers
	authHandler := handler.NewAuthHandler(db)
	orderHandler := handler.NewOrderHandler(db, orderService)
	refundHandler := handler.NewRefundHandler(db, refundService)
	paymentHandler := handler.NewPaymentHandler(db)
	inventoryHandler := handler.NewInventoryHandler(db)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Login
	e.POST("/auth/login", authHandler.Login)

	// Order API routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.POST("", orderHandler.CreateOrder, mid.RequirePermission(auth.PermOrdersCreate))
	orderAPI.GET("", orderHandler.ListOrders, mid.RequirePermission(auth.PermOrdersRead))
	orderAPI.GET("/:id", orderHandler.GetOrder, mid.RequirePermission(auth.PermOrdersRead))

	// Refund API routes
	refundAPI := e.Group("/api/refunds", mid.AuthMiddleware)
	refundAPI.POST("", refundHandler.CreateRefund, mid.RequirePermission(auth.PermRefundsCreate))
	refundAPI.GET("", refundHandler.ListRefunds, mid.RequirePermission(auth.PermRefundsRead))
	refundAPI.GET("/:id", refundHandler.GetRefund, mid.RequirePermission(auth.PermRefundsRead))

	// Payment API routes
	paymentAPI := e.Group("/api/payments", mid.AuthMiddleware)
	paymentAPI.GET("", paymentHandler.ListPayments, mid.RequirePermission(auth.PermPaymentsRead))

	// Inventory API routes
	inventoryAPI := e.Group("/api/inventory", mid.AuthMiddleware)
	inventoryAPI.GET("", inventoryHandler.ListInventory, mid.RequirePermission(auth.PermInventoryRead))

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
