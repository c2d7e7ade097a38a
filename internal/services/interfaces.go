package services

import (
	"time"

	"tradepilot/internal/models"
	"tradepilot/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateBrokerCredentials(userID uint, apiKey, apiSecret *string) (*models.User, error)
	UpdateTelegramChat(userID uint, chatID *string) (*models.User, error)
}

// TradeServicer defines the contract for trade-related business logic.
type TradeServicer interface {
	CreateTrade(userID uint, symbol string, quantity int, price float64, tradeType models.TradeType, isAIGenerated bool) (*models.Trade, error)
	GetTradeByID(userID, tradeID uint) (*models.Trade, error)
	GetUserTrades(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Trade], error)
	CloseTrade(tradeID uint, exitPrice float64, exitTime time.Time) (*models.Trade, error)
}

// SignalServicer defines the contract for trading-signal business logic.
type SignalServicer interface {
	CreateSignal(symbol string, signalType models.SignalType, confidence, price float64, timestamp time.Time, metadata models.Metadata) (*models.TradingSignal, error)
	GetSignalByID(id uint) (*models.TradingSignal, error)
	GetSignalsBySymbol(symbol string) ([]models.TradingSignal, error)
	GetRecentSignals(limit int) ([]models.TradingSignal, error)
}

// RiskSettingsUpdate holds the optional fields of a risk-settings update.
// Nil fields keep their current value.
type RiskSettingsUpdate struct {
	MaxCapitalPerTrade    *float64
	StopLossPercentage    *float64
	TakeProfitPercentage  *float64
	AIConfidenceThreshold *float64
	DefaultLotSize        *int
	InstrumentTypes       *models.InstrumentType
	AutoTradingEnabled    *bool
}

// RiskServicer defines the contract for risk-settings business logic.
type RiskServicer interface {
	GetOrCreateRiskSettings(userID uint) (*models.RiskSettings, error)
	UpdateRiskSettings(userID uint, update RiskSettingsUpdate) (*models.RiskSettings, error)
	SetAutoTrading(userID uint, enabled bool) (*models.RiskSettings, error)
}

// NotificationServicer defines the contract for notification business logic.
type NotificationServicer interface {
	CreateNotification(userID uint, message string, timestamp time.Time, notificationType models.NotificationType, status models.NotificationStatus) (*models.Notification, error)
	GetNotificationByID(id uint) (*models.Notification, error)
	GetUserNotifications(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
}
