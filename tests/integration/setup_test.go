package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tradepilot/internal/broker"
	"tradepilot/internal/handlers"
	"tradepilot/internal/logger"
	"tradepilot/internal/middleware"
	"tradepilot/internal/models"
	"tradepilot/internal/services"
	"tradepilot/internal/signals"
	"tradepilot/internal/telegram"
	"tradepilot/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Broker   *broker.PaperClient
	Notifier *telegram.MockNotifier
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Trade{},
		&models.TradingSignal{},
		&models.RiskSettings{},
		&models.Notification{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	tradeService := services.NewTradeService(db)
	signalService := services.NewSignalService(db)
	riskService := services.NewRiskService(db)
	notificationService := services.NewNotificationService(db)

	// Collaborators
	brokerClient := broker.NewPaperClient()
	notifier := telegram.NewMockNotifier()
	engine := signals.NewEngine(brokerClient, signalService, notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, riskService)
	brokerHandler := handlers.NewBrokerHandler(brokerClient, userService, tradeService, notificationService, notifier)
	telegramHandler := handlers.NewTelegramHandler(notifier, userService, notificationService)
	signalHandler := handlers.NewSignalHandler(engine, riskService, notifier)
	riskHandler := handlers.NewRiskHandler(riskService)
	tradeHandler := handlers.NewTradeHandler(tradeService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	brokerGroup := protected.Group("/broker")
	brokerGroup.POST("/connect", brokerHandler.Connect)
	brokerGroup.POST("/disconnect", brokerHandler.Disconnect)
	brokerGroup.GET("/status", brokerHandler.Status)
	brokerGroup.GET("/market-status", brokerHandler.MarketStatus)
	brokerGroup.GET("/market-data", brokerHandler.MarketData)
	brokerGroup.POST("/orders", brokerHandler.PlaceOrder)

	telegramGroup := protected.Group("/telegram")
	telegramGroup.POST("/connect", telegramHandler.Connect)
	telegramGroup.POST("/disconnect", telegramHandler.Disconnect)
	telegramGroup.GET("/status", telegramHandler.Status)
	telegramGroup.GET("/messages", telegramHandler.Messages)
	telegramGroup.POST("/send", telegramHandler.Send)
	telegramGroup.POST("/signals/accept", telegramHandler.AcceptSignal)
	telegramGroup.POST("/signals/ignore", telegramHandler.IgnoreSignal)
	protected.GET("/notifications", telegramHandler.Notifications)

	signalGroup := protected.Group("/signals")
	signalGroup.GET("", signalHandler.GetSignals)
	signalGroup.GET("/patterns", signalHandler.TechnicalPatterns)
	signalGroup.GET("/market-update", signalHandler.MarketUpdate)
	protected.POST("/auto-trading", signalHandler.SetAutoTrading)

	protected.GET("/risk-settings", riskHandler.GetRiskSettings)
	protected.PUT("/risk-settings", riskHandler.UpdateRiskSettings)

	trades := protected.Group("/trades")
	trades.GET("", tradeHandler.GetUserTrades)
	trades.GET("/:id", tradeHandler.GetTradeByID)
	trades.POST("/:id/close", tradeHandler.CloseTrade)

	return &testApp{DB: db, Router: router, Broker: brokerClient, Notifier: notifier}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// parseJSONArray parses the response body into a slice.
func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (token string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, username, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// connectBroker connects the paper broker for the given user.
func (app *testApp) connectBroker(t *testing.T, token string) {
	t.Helper()
	rec := app.request("POST", "/api/v1/broker/connect",
		`{"api_key":"key","api_secret":"secret"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("broker connect failed: %d %s", rec.Code, rec.Body.String())
	}
}
