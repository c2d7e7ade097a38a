package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tradepilot/internal/broker"
	"tradepilot/internal/config"
	"tradepilot/internal/database"
	"tradepilot/internal/handlers"
	"tradepilot/internal/logger"
	"tradepilot/internal/middleware"
	"tradepilot/internal/services"
	"tradepilot/internal/signals"
	"tradepilot/internal/telegram"
	"tradepilot/internal/validator"

	_ "tradepilot/internal/docs" // Import swagger docs
)

// @title           TradePilot API
// @version         1.0
// @description     TradePilot is a trading dashboard backend serving market data, portfolio holdings, trade history, and AI trading signals.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	tradeService := services.NewTradeService(db)
	signalService := services.NewSignalService(db)
	riskService := services.NewRiskService(db)
	notificationService := services.NewNotificationService(db)

	// External collaborators: paper broker, and the real Bot API notifier
	// when a bot token is configured.
	brokerClient := broker.NewPaperClient()
	var notifier telegram.Notifier
	if appConfig.TelegramBotToken != "" {
		notifier = telegram.NewBotNotifier()
	} else {
		notifier = telegram.NewMockNotifier()
	}

	engine := signals.NewEngine(brokerClient, signalService, notifier)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, riskService)
	brokerHandler := handlers.NewBrokerHandler(brokerClient, userService, tradeService, notificationService, notifier)
	telegramHandler := handlers.NewTelegramHandler(notifier, userService, notificationService)
	signalHandler := handlers.NewSignalHandler(engine, riskService, notifier)
	riskHandler := handlers.NewRiskHandler(riskService)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Broker routes
	brokerGroup := protected.Group("/broker")
	brokerGroup.POST("/connect", brokerHandler.Connect)
	brokerGroup.POST("/disconnect", brokerHandler.Disconnect)
	brokerGroup.GET("/status", brokerHandler.Status)
	brokerGroup.GET("/market-status", brokerHandler.MarketStatus)
	brokerGroup.GET("/market-data", brokerHandler.MarketData)
	brokerGroup.POST("/orders", brokerHandler.PlaceOrder)

	// Telegram routes
	telegramGroup := protected.Group("/telegram")
	telegramGroup.POST("/connect", telegramHandler.Connect)
	telegramGroup.POST("/disconnect", telegramHandler.Disconnect)
	telegramGroup.GET("/status", telegramHandler.Status)
	telegramGroup.GET("/messages", telegramHandler.Messages)
	telegramGroup.POST("/send", telegramHandler.Send)
	telegramGroup.POST("/signals/accept", telegramHandler.AcceptSignal)
	telegramGroup.POST("/signals/ignore", telegramHandler.IgnoreSignal)
	protected.GET("/notifications", telegramHandler.Notifications)

	// Signal routes
	signalGroup := protected.Group("/signals")
	signalGroup.GET("", signalHandler.GetSignals)
	signalGroup.GET("/patterns", signalHandler.TechnicalPatterns)
	signalGroup.GET("/market-update", signalHandler.MarketUpdate)
	protected.POST("/auto-trading", signalHandler.SetAutoTrading)

	// Risk settings routes
	protected.GET("/risk-settings", riskHandler.GetRiskSettings)
	protected.PUT("/risk-settings", riskHandler.UpdateRiskSettings)

	// Trade routes
	trades := protected.Group("/trades")
	trades.GET("", tradeHandler.GetUserTrades)
	trades.GET("/:id", tradeHandler.GetTradeByID)
	trades.POST("/:id/close", tradeHandler.CloseTrade)

	log.Infof("Starting TradePilot backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
